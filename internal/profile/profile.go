package profile

import (
	"fmt"
	"strings"
)

// Profile is the candidate's static CV used as context for the drafting agent.
type Profile struct {
	Name     string
	Email    string
	Phone    string
	Location string
	GitHub   string
	LinkedIn string
	Summary  string

	Experience     []Experience
	Education      []Education
	Skills         []SkillGroup
	Certifications []string
	Projects       []Project
	Languages      []Language
	Organizations  []string
	Volunteering   []Volunteering
}

type Experience struct {
	Company    string
	Role       string
	Period     string
	Highlights []string
}

type Education struct {
	Institution string
	Degree      string
	Period      string
	GPA         string
}

type SkillGroup struct {
	Category string
	Skills   string
}

type Project struct {
	Name        string
	Description string
}

type Language struct {
	Name  string
	Level string
}

type Volunteering struct {
	Organization string
	Role         string
	Period       string
	Description  string
}

// Default returns the candidate profile the assistant responds on behalf of.
func Default() *Profile {
	return &Profile{
		Name:     "Deniz Büyükşahin",
		Email:    "buyuksahin.dnz@gmail.com",
		Phone:    "+90 545 840 0810",
		Location: "Antalya, Turkey",
		GitHub:   "github.com/Dnzbykshn",
		LinkedIn: "linkedin.com/in/denizbuyuksahin/",
		Summary: "Proactive Computer Engineering student with a solid foundation in both software development " +
			"and network administration. Combines hands-on experience in full-stack development (ASP.NET, " +
			"Next.js, Python) with practical knowledge of IT infrastructure, Linux systems, and network " +
			"security. Certified in CCNA and Cybersecurity, with a passion for automating workflows, " +
			"cloud technologies (AWS), and DevSecOps practices. Seeking to leverage technical skills in " +
			"system optimization and secure infrastructure to contribute to scalable IT solutions.",
		Experience: []Experience{
			{
				Company: "RTN House",
				Role:    "AI & Product Engineer (Contract)",
				Period:  "01/2026 – Present",
				Highlights: []string{
					"Engineered a Hybrid Search engine using Python (FastAPI), PostgreSQL (pgvector), and Elasticsearch",
					"Integrated Google Gemini LLM for personalized content generation with 3-tier Semantic Routing",
					"Designed Docker-containerized microservices infrastructure with Redis caching, reducing API costs by 60%",
					"Developed end-to-end API services for Flutter/React Native mobile interfaces",
				},
			},
			{
				Company: "Minimal Yazilim",
				Role:    "Full Stack Engineer",
				Period:  "12/2025 – Present",
				Highlights: []string{
					"Architected scalable full-stack solutions for CRM, SCM, and internal control systems",
					"Developed SEO-centric, high-conversion web platforms using Next.js with SSR/SSG",
					"Built secure admin dashboards (CMS) for business operations management",
					"Engineered cross-platform mobile solutions synchronized with web infrastructures",
				},
			},
			{
				Company: "Huawei Student Developers",
				Role:    "Project Team Leader",
				Period:  "09/2024 – Present",
				Highlights: []string{
					"Organized technical software training programs for students",
					"Managed workflows using cloud collaboration tools (Google Workspace)",
				},
			},
			{
				Company: "Freelance",
				Role:    "Full-Stack Developer",
				Period:  "09/2022 – Present",
				Highlights: []string{
					"Directed full SDLC for SME clients: requirements analysis through production deployment",
					"Engineered a Warehouse Management System (WMS) using ASP.NET MVC and MS SQL",
					"Automated reporting features reducing manual stock counting errors by ~30%",
				},
			},
			{
				Company: "HB Technology",
				Role:    "Part-Time IT Technician",
				Period:  "2021 – 2024",
				Highlights: []string{
					"Configured and maintained LAN, routers, and switches",
					"Provided Level-2 support for hardware/software incidents with TCP/IP analysis",
					"Administered IP-based CCTV monitoring systems",
				},
			},
		},
		Education: []Education{
			{Institution: "Akdeniz University", Degree: "Computer Engineering (English)", Period: "2024 – Present"},
			{Institution: "Akdeniz University", Degree: "Computer Programming", Period: "2022 – 2024", GPA: "3.39 - High Honor Graduate"},
			{Institution: "Dokuz Eylül University", Degree: "Preschool Education", Period: "2020 – 2021"},
		},
		Skills: []SkillGroup{
			{Category: "DevOps & Cloud", Skills: "AWS (EC2, S3, IAM), Docker, Git, CI/CD Pipelines, Linux Administration (Bash Scripting)"},
			{Category: "Programming", Skills: "Python, Java, C#, JavaScript, OOP, SQL"},
			{Category: "Web & Database", Skills: "RESTful APIs, ASP.NET MVC, Entity Framework, MS SQL, HTML/CSS, Next.js, FastAPI"},
			{Category: "Network & Systems", Skills: "TCP/IP, LAN/WAN Administration, Network Troubleshooting, OSI Model, TLS 1.3, AES Encryption"},
		},
		Certifications: []string{
			"Cisco Certified Network Associate (CCNA)",
			"Cisco Introduction to Cybersecurity",
			"NDG Linux Essentials",
		},
		Projects: []Project{
			{
				Name: "Smart Health Monitoring System (Stanford Univ. Competition Winner)",
				Description: "HIPAA/GDPR compliant data pipeline using Python with AES-128 encryption and TLS 1.3. " +
					"Developed RESTful APIs with HL7 FHIR standards. Reduced hardware dependency by 90% " +
					"via OpenCV signal processing.",
			},
			{
				Name: "Automated Business Intelligence Harvester with OCR",
				Description: "Data-harvesting engine in Python (Selenium, Requests) with Tesseract OCR pipeline. " +
					"Automated extraction from 115+ pages, aggregating 2,000+ company profiles.",
			},
			{
				Name: "High-Frequency Algorithmic Trading Simulation",
				Description: "Real-time trading engine using Python and Asyncio with WebSocket data streams. " +
					"Grid-Search algorithm for 300+ strategy configurations. " +
					"Recognized as exemplary project by faculty.",
			},
		},
		Languages: []Language{
			{Name: "English", Level: "Professional Working Proficiency (B2)"},
			{Name: "Turkish", Level: "Native"},
		},
		Organizations: []string{
			"BILMÖK (largest national student congress in Turkey) — Committee organizer for 2025 edition, " +
				"developed eligibility-checking algorithm for 700+ participants",
		},
		Volunteering: []Volunteering{
			{
				Organization: "Habitat Dernegi (Vodafone Foundation partnership)",
				Role:         "AI Stars Educator",
				Period:       "02/2026 – Present",
				Description:  "Educating students on responsible and ethical use of AI",
			},
		},
	}
}

// Text renders the profile as a readable block for prompt injection.
func (p *Profile) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", p.Name)
	fmt.Fprintf(&b, "Email: %s | Phone: %s | Location: %s\n", p.Email, p.Phone, p.Location)
	fmt.Fprintf(&b, "GitHub: %s | LinkedIn: %s\n\n", p.GitHub, p.LinkedIn)

	b.WriteString("## Profile Summary\n")
	b.WriteString(p.Summary)
	b.WriteString("\n\n## Work Experience\n")

	for _, exp := range p.Experience {
		fmt.Fprintf(&b, "\n### %s at %s (%s)\n", exp.Role, exp.Company, exp.Period)
		for _, h := range exp.Highlights {
			fmt.Fprintf(&b, "  - %s\n", h)
		}
	}

	b.WriteString("\n## Education\n")
	for _, edu := range p.Education {
		gpa := ""
		if edu.GPA != "" {
			gpa = fmt.Sprintf(" — GPA: %s", edu.GPA)
		}
		fmt.Fprintf(&b, "  - %s, %s (%s)%s\n", edu.Degree, edu.Institution, edu.Period, gpa)
	}

	b.WriteString("\n## Technical Skills\n")
	for _, group := range p.Skills {
		fmt.Fprintf(&b, "  - %s: %s\n", group.Category, group.Skills)
	}

	b.WriteString("\n## Certifications\n")
	for _, cert := range p.Certifications {
		fmt.Fprintf(&b, "  - %s\n", cert)
	}

	b.WriteString("\n## Projects\n")
	for _, proj := range p.Projects {
		fmt.Fprintf(&b, "\n### %s\n  %s\n", proj.Name, proj.Description)
	}

	b.WriteString("\n## Languages\n")
	for _, lang := range p.Languages {
		fmt.Fprintf(&b, "  - %s: %s\n", lang.Name, lang.Level)
	}

	b.WriteString("\n## Organizations & Volunteering\n")
	for _, org := range p.Organizations {
		fmt.Fprintf(&b, "  - %s\n", org)
	}
	for _, vol := range p.Volunteering {
		fmt.Fprintf(&b, "  - %s at %s (%s): %s\n", vol.Role, vol.Organization, vol.Period, vol.Description)
	}

	return strings.TrimRight(b.String(), "\n")
}
