// Package cmd — render command.
// This is the main command that orchestrates the pipeline:
// read request → normalize addresses → normalize body → compose → write.
//
// It handles flag validation, env-provided sender defaults, and the
// request JSON's loose address shapes.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/inkwell-mail/letterpress/core"
	"github.com/inkwell-mail/letterpress/core/address"
	"github.com/inkwell-mail/letterpress/core/normalize"
	"github.com/inkwell-mail/letterpress/core/output"
	"github.com/inkwell-mail/letterpress/core/render"
)

// Flag variables.
var (
	flagOutputDir string
	flagTier      string
	flagAudioURL  string
	flagSignature string
)

var renderCmd = &cobra.Command{
	Use:   "render <request.json>",
	Short: "Render a letter request into a mail-ready PDF",
	Long: `Render reads a letter request from a JSON file, normalizes the recipient
and sender addresses, flattens any rich-text body, and composes the letter
into a print-ready PDF.

Examples:
  letterpress render request.json
  letterpress render request.json --output_dir ./out
  letterpress render request.json --tier heirloom --audio_url https://cdn.example.com/rec.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	renderCmd.Flags().StringVar(&flagTier, "tier", "", "Override the request's service tier")
	renderCmd.Flags().StringVar(&flagAudioURL, "audio_url", "", "Override the request's audio recording URL")
	renderCmd.Flags().StringVar(&flagSignature, "signature", "", "Override the request's signature text")
}

// rawRequest is the loose on-disk shape: addresses arrive as mappings in
// whatever key convention the upstream editor or carrier produced.
type rawRequest struct {
	BodyText      string         `json:"body_text"`
	Recipient     map[string]any `json:"recipient"`
	Sender        map[string]any `json:"sender"`
	Tier          string         `json:"tier"`
	SignatureText string         `json:"signature_text"`
	AudioURL      string         `json:"audio_url"`
	Branding      core.Branding  `json:"branding_metadata"`
}

func runRender(cmd *cobra.Command, args []string) error {
	// .env carries the shop's default sender and white-label firm;
	// a missing file is fine.
	_ = godotenv.Load()

	raw, err := readRequest(args[0])
	if err != nil {
		return err
	}

	req := buildRequest(raw)
	if err := validateRequest(req); err != nil {
		return err
	}

	// Flatten rich-text bodies. A cleanup failure prints the raw text
	// rather than failing the job.
	if body, nerr := normalize.New().Normalize(req.BodyText); nerr != nil {
		fmt.Fprintf(os.Stderr, "✗ Body cleanup failed, printing raw text: %v\n", nerr)
	} else {
		req.BodyText = body
	}

	data := render.New().Compose(req)

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.WriteLetter(req.Recipient.Name, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// readRequest loads and decodes the request JSON.
func readRequest(path string) (rawRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rawRequest{}, fmt.Errorf("reading request: %w", err)
	}
	var raw rawRequest
	if err := json.Unmarshal(data, &raw); err != nil {
		return rawRequest{}, fmt.Errorf("decoding request %s: %w", path, err)
	}
	return raw, nil
}

// buildRequest resolves the loose request into the composer's input,
// applying flag overrides and env defaults.
func buildRequest(raw rawRequest) core.LetterRequest {
	req := core.LetterRequest{
		BodyText:      raw.BodyText,
		Recipient:     address.Normalize(raw.Recipient),
		Sender:        address.Normalize(raw.Sender),
		Tier:          core.ParseTier(raw.Tier),
		SignatureText: raw.SignatureText,
		AudioURL:      raw.AudioURL,
		Branding:      raw.Branding,
	}

	if flagTier != "" {
		req.Tier = core.ParseTier(flagTier)
	}
	if flagAudioURL != "" {
		req.AudioURL = flagAudioURL
	}
	if flagSignature != "" {
		req.SignatureText = flagSignature
	}

	// The shop's return address fills in when the request omits one.
	if req.Sender.Name == "" && req.Sender.Street == "" {
		req.Sender = senderFromEnv()
	}
	if req.Branding.FirmName == "" {
		req.Branding.FirmName = os.Getenv("LETTERPRESS_FIRM_NAME")
	}
	return req
}

// senderFromEnv builds the default sender from LETTERPRESS_SENDER_* vars.
func senderFromEnv() core.CanonicalAddress {
	return address.Normalize(map[string]any{
		"name":        os.Getenv("LETTERPRESS_SENDER_NAME"),
		"street":      os.Getenv("LETTERPRESS_SENDER_STREET"),
		"line2":       os.Getenv("LETTERPRESS_SENDER_LINE2"),
		"city":        os.Getenv("LETTERPRESS_SENDER_CITY"),
		"state":       os.Getenv("LETTERPRESS_SENDER_STATE"),
		"postal_code": os.Getenv("LETTERPRESS_SENDER_ZIP"),
		"country":     os.Getenv("LETTERPRESS_SENDER_COUNTRY"),
	})
}

// validateRequest checks the minimum the carrier needs to mail a letter.
// Rendering itself never fails on content, but a letter with no
// destination cannot enter the fulfillment queue.
func validateRequest(req core.LetterRequest) error {
	if req.Recipient.Name == "" || req.Recipient.Street == "" {
		return fmt.Errorf("recipient requires at least a name and street address")
	}
	return nil
}
