package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"dlist/types"
)

// readLine returns the next line of r. At EOF it keeps polling for more
// data, like tail -f, unless the pending text already ends with "}".
func readLine(ctx context.Context, r *bufio.Reader, pollInterval time.Duration) (string, error) {
	var line strings.Builder
	for {
		chunk, err := r.ReadString('\n')
		line.WriteString(chunk)
		if err == nil {
			return strings.TrimSpace(line.String()), nil
		}
		if err != io.EOF {
			return "", err
		}

		// Command ends with }
		if pending := strings.TrimSpace(line.String()); strings.HasSuffix(pending, "}") {
			return pending, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// SubscribeToFileInput streams non-empty lines of input until ctx is done.
// A read failure is delivered on the error channel and ends the stream.
func SubscribeToFileInput(ctx context.Context, input io.Reader, pollInterval time.Duration) (<-chan string, <-chan error) {
	lines := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(input)
		for {
			line, err := readLine(ctx, reader, pollInterval)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					errChan <- err
				}
				return
			}
			if line == "" {
				continue
			}

			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	return lines, errChan
}

// setInterval calls function every interval until ctx is done.
func setInterval(ctx context.Context, function func(), interval time.Duration) *time.Ticker {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				function()
			}
		}
	}()
	return ticker
}

// parseClientAction splits "<clientId> <json command>".
func parseClientAction(inputStr string) (string, *types.Command, error) {
	clientId, itemStr, found := strings.Cut(strings.TrimSpace(inputStr), " ")
	if !found || clientId == "" {
		return "", nil, fmt.Errorf("wrong input string %q, should be in format <clientId> <command>", inputStr)
	}

	var cmd *types.Command
	if err := json.Unmarshal([]byte(itemStr), &cmd); err != nil {
		return "", nil, err
	}
	if cmd == nil {
		return "", nil, fmt.Errorf("empty command for client %s", clientId)
	}

	return clientId, cmd, nil
}
