package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/document"
	"github.com/fentz26/gardenview/internal/models"
	"github.com/spf13/cobra"
)

var (
	encodeBaseURL string
	payloadOnly   bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode <file|->",
	Short: "Turn a garden JSON document into a viewer link",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <link|payload|->",
	Short: "Print the garden document carried by a link",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	encodeCmd.Flags().StringVar(&encodeBaseURL, "base-url", "", "Viewer address to link to (overrides config)")
	encodeCmd.Flags().BoolVar(&payloadOnly, "payload", false, "Print only the payload, not the full link")
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// readLinkArg returns the argument, or a link read from stdin for "-".
func readLinkArg(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := readInput(cmd, arg)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// loadGarden accepts a viewer link, a bare payload or a JSON file.
func loadGarden(cmd *cobra.Command, arg string) (*models.Garden, error) {
	if arg != "-" {
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			data, err := os.ReadFile(arg)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", arg, err)
			}
			if looksLikeJSON(data) {
				return document.Validate(data)
			}
			arg = strings.TrimSpace(string(data))
		}
	}

	link, err := readLinkArg(cmd, arg)
	if err != nil {
		return nil, err
	}
	if looksLikeJSON([]byte(link)) {
		return document.Validate([]byte(link))
	}

	g, err := document.LoadLink(link, newDecoder())
	if err != nil {
		logger.Warn("garden link rejected", "stage", document.Stage(err), "error", err)
		return nil, errors.New(document.UserMessage(err))
	}
	return g, nil
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

func runEncode(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	g, err := document.Validate(data)
	if err != nil {
		return fmt.Errorf("invalid garden document: %w", err)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, bytes.TrimSpace(data)); err != nil {
		return fmt.Errorf("invalid garden document: %w", err)
	}
	payload, err := codec.Encode(json.RawMessage(compact.Bytes()))
	if err != nil {
		return err
	}
	logger.Debug("encoded garden", "name", g.Name, "json_bytes", compact.Len(), "payload_len", len(payload))

	if payloadOnly {
		fmt.Fprintln(cmd.OutOrStdout(), payload)
		return nil
	}

	base := cfg.BaseURL
	if encodeBaseURL != "" {
		base = encodeBaseURL
	}
	link, err := codec.Link(base, payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), link)
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	link, err := readLinkArg(cmd, args[0])
	if err != nil {
		return err
	}

	payload := codec.PayloadFromLink(link)
	raw, err := newDecoder().Decode(payload)
	if err == nil {
		_, err = document.Validate(raw)
	}
	if err != nil {
		logger.Warn("garden link rejected", "stage", document.Stage(err), "error", err)
		return errors.New(document.UserMessage(err))
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(cmd.OutOrStdout())
	return err
}
