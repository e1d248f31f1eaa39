package main

import (
	"github.com/spf13/cobra"
)

var (
	configPath string

	verifyType   string
	verifyAPIKey string
	verifySimple bool

	promptType   string
	promptSimple bool

	rootCmd = &cobra.Command{
		Use:           "truecheck",
		Short:         "LLM-backed data verification service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe, // cmd_serve.go
	}

	verifyCmd = &cobra.Command{
		Use:   "verify [data]",
		Short: "Verify one value and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify, // cmd_verify.go
	}

	promptCmd = &cobra.Command{
		Use:   "prompt [data]",
		Short: "Print the prompt that would be sent to the model",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrompt, // cmd_verify.go
	}

	typesCmd = &cobra.Command{
		Use:   "types",
		Short: "List the supported verification types",
		Args:  cobra.NoArgs,
		RunE:  runTypes, // cmd_verify.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file (default: ./configs/config.yaml)")

	verifyCmd.Flags().StringVarP(&verifyType, "type", "t", "custom", "verification type")
	verifyCmd.Flags().StringVar(&verifyAPIKey, "api-key", "", "Gemini API key (default: $GEMINI_API_KEY)")
	verifyCmd.Flags().BoolVar(&verifySimple, "v1", false, "answer with the v1 status/message shape")

	promptCmd.Flags().StringVarP(&promptType, "type", "t", "custom", "verification type")
	promptCmd.Flags().BoolVar(&promptSimple, "v1", false, "render the v1 prompt")

	rootCmd.AddCommand(serveCmd, verifyCmd, promptCmd, typesCmd)
}
