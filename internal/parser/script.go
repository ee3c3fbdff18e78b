package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/hashgraph-online/desktop-bridge/internal/errkind"
)

const (
	actionParse    = "transaction_parser_parse"
	actionValidate = "transaction_parser_validate"
)

type scriptRequest struct {
	ID      uint64         `json:"id"`
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload"`
}

type scriptResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// ScriptDecoder shells out to the decoding script for every call: one
// request line on stdin, one JSON response line on stdout. The script is
// free to log noise to stdout before the response, so only the last JSON
// line counts.
type ScriptDecoder struct {
	command    string
	scriptPath string
	logger     *slog.Logger
}

// NewScriptDecoder builds a decoder that runs command scriptPath per call.
// command is typically "node".
func NewScriptDecoder(command, scriptPath string, logger *slog.Logger) *ScriptDecoder {
	return &ScriptDecoder{
		command:    command,
		scriptPath: scriptPath,
		logger:     logger.With("component", "script_decoder"),
	}
}

// Decode runs the parse action and returns the decoded transaction JSON.
func (d *ScriptDecoder) Decode(ctx context.Context, transactionBytes string) (json.RawMessage, error) {
	return d.request(ctx, actionParse, transactionBytes)
}

// Validate runs the validate action, discarding the decoded form.
func (d *ScriptDecoder) Validate(ctx context.Context, transactionBytes string) error {
	_, err := d.request(ctx, actionValidate, transactionBytes)
	return err
}

func (d *ScriptDecoder) request(ctx context.Context, action, transactionBytes string) (json.RawMessage, error) {
	req := scriptRequest{
		ID:     1,
		Action: action,
		Payload: map[string]any{
			"transactionBytes": transactionBytes,
		},
	}
	line, err := json.Marshal(req)
	if err != nil {
		return nil, errkind.Wrap(errkind.KindParse, fmt.Errorf("marshal decoder request: %w", err))
	}

	cmd := exec.CommandContext(ctx, d.command, d.scriptPath)
	cmd.Stdin = bytes.NewReader(append(line, '\n'))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errkind.Wrap(errkind.KindTimeout, ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errkind.New(errkind.KindParse, msg)
		}
		return nil, errkind.Wrap(errkind.KindParse, fmt.Errorf("decoder process: %w", err))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return nil, errkind.New(errkind.KindParse, "decoder produced no output")
	}

	payload, ok := extractJSON(out)
	if !ok {
		d.logger.Warn("decoder emitted non-JSON output", "output", out)
		return nil, errkind.New(errkind.KindParse, "decoder returned non-JSON output")
	}

	var resp scriptResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, errkind.Wrap(errkind.KindParse, fmt.Errorf("unmarshal decoder response: %w", err))
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "decoder returned an error"
		}
		return nil, errkind.New(errkind.KindParse, msg)
	}
	return resp.Data, nil
}

// extractJSON picks the response object out of the decoder's stdout: the
// last line that looks like a JSON object, falling back to the outermost
// brace span.
func extractJSON(out string) (string, bool) {
	lines := strings.Split(out, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		candidate := strings.TrimSpace(lines[i])
		if strings.HasPrefix(candidate, "{") && strings.HasSuffix(candidate, "}") {
			return candidate, true
		}
	}

	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start >= 0 && end >= start {
		return out[start : end+1], true
	}
	return "", false
}
