package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"truecheck/internal/models"
	buildprompt "truecheck/internal/pipeline/build-prompt"

	"github.com/spf13/cobra"
)

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	apiKey := verifyAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("an API key is required: pass --api-key or set GEMINI_API_KEY")
	}

	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	req := &models.VerificationRequest{Data: args[0], Type: verifyType, APIKey: apiKey}

	var (
		result interface{}
		verr   error
	)
	if verifySimple {
		r, err := a.service.VerifySimple(ctx, req)
		result, verr = models.SimpleResponse{Results: []models.SimpleResult{r}}, err
	} else {
		r, err := a.service.VerifyExtended(ctx, req)
		result, verr = models.ExtendedResponse{Results: []models.ExtendedResult{r}}, err
	}

	if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if verr != nil {
		return fmt.Errorf("verification failed: %w", verr)
	}
	return nil
}

func runPrompt(cmd *cobra.Command, args []string) error {
	shape := models.ShapeExtended
	if promptSimple {
		shape = models.ShapeSimple
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), buildprompt.Build(args[0], promptType, shape))
	return err
}

func runTypes(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tLABEL\tDESCRIPTION")
	for _, t := range models.SupportedTypes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Value, t.Label, t.Description)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
