package conversation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Appends for a single sender must come back in append order regardless of
// how many entries are written, and concurrent writers from different senders
// must never lose or corrupt entries.

func TestProperty_MemoryStorePreservesAppendOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("history returns entries in append order", prop.ForAll(
		func(count int) bool {
			store := NewMemoryStore()

			for i := 0; i < count; i++ {
				entry := Entry{
					EmployerMessage: fmt.Sprintf("message-%d", i),
					AgentResponse:   fmt.Sprintf("response-%d", i),
					Status:          StatusApproved,
					Timestamp:       time.Now(),
				}
				if err := store.Append("sender@example.com", entry); err != nil {
					return false
				}
			}

			history, err := store.History("sender@example.com")
			if err != nil || len(history) != count {
				return false
			}

			for i, entry := range history {
				if entry.EmployerMessage != fmt.Sprintf("message-%d", i) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 50),
	))

	properties.TestingRun(t)
}

func TestProperty_MemoryStoreConcurrentSendersLoseNothing(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("concurrent appends across senders are all recorded", prop.ForAll(
		func(senders int, perSender int) bool {
			store := NewMemoryStore()

			var wg sync.WaitGroup
			for s := 0; s < senders; s++ {
				sender := fmt.Sprintf("sender-%d@example.com", s)
				wg.Add(1)
				go func(sender string) {
					defer wg.Done()
					for i := 0; i < perSender; i++ {
						entry := Entry{
							EmployerMessage: fmt.Sprintf("%s/%d", sender, i),
							Status:          StatusApproved,
							Timestamp:       time.Now(),
						}
						_ = store.Append(sender, entry)
					}
				}(sender)
			}
			wg.Wait()

			all, err := store.All()
			if err != nil || len(all) != senders {
				return false
			}

			for s := 0; s < senders; s++ {
				sender := fmt.Sprintf("sender-%d@example.com", s)
				history := all[sender]
				if len(history) != perSender {
					return false
				}
				for i, entry := range history {
					if entry.EmployerMessage != fmt.Sprintf("%s/%d", sender, i) {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}
