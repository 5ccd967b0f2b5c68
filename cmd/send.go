package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dnzbykshn/career-responder/internal/logger"
	"github.com/dnzbykshn/career-responder/internal/pipeline"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var confirmPrompt = promptui.Select{
	Label: "Process this message?",
	Items: []string{PromptYes, PromptNo},
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Process a single employer message interactively",
	Run: func(_ *cobra.Command, _ []string) {
		send()
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

// send runs one message through the pipeline without starting the server.
// Useful for smoke-testing credentials and prompts from a terminal.
func send() {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	pipe, _, _, err := buildPipeline(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("building the pipeline", zap.Error(err))
	}

	msg, err := promptMessage()
	if err != nil {
		zlog.Fatal("reading the message", zap.Error(err))
	}

	_, action, err := confirmPrompt.Run()
	if err != nil {
		zlog.Fatal("exiting", zap.Error(err))
	}
	if action == PromptNo {
		zlog.Info("exiting", zap.String("reason", "got no from prompt"))
		return
	}

	outcome, err := pipe.Process(ctx, msg)
	if err != nil {
		zlog.Fatal("processing the message", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(struct {
		Status        string  `json:"status"`
		ResponseText  string  `json:"response_text"`
		RevisionCount int     `json:"revision_count"`
		OverallScore  float64 `json:"overall_score,omitempty"`
	}{
		Status:        outcome.Status,
		ResponseText:  outcome.ResponseText,
		RevisionCount: outcome.RevisionCount,
		OverallScore:  overallScore(outcome),
	}, "", "  ")

	fmt.Println(string(pretty))
}

func promptMessage() (pipeline.Message, error) {
	var msg pipeline.Message

	fields := []struct {
		label  string
		target *string
	}{
		{"Sender name", &msg.SenderName},
		{"Sender email", &msg.SenderEmail},
		{"Subject", &msg.Subject},
		{"Message", &msg.Body},
	}

	for _, field := range fields {
		prompt := promptui.Prompt{
			Label: field.label,
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return errors.New("value is required")
				}
				return nil
			},
		}

		value, err := prompt.Run()
		if err != nil {
			return msg, err
		}
		*field.target = strings.TrimSpace(value)
	}

	return msg, nil
}

func overallScore(outcome *pipeline.Outcome) float64 {
	if outcome.Evaluation == nil {
		return 0
	}
	return outcome.Evaluation.OverallScore
}
