package client

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"dlist/logger"
	"dlist/queue/mocks"
	"dlist/types"

	"go.uber.org/mock/gomock"
)

func TestClientSend(t *testing.T) {
	tests := []struct {
		name      string
		send      func(ctx context.Context, c *Client) error
		wantGroup string
		wantBody  string
	}{
		{
			name:      "append",
			send:      func(ctx context.Context, c *Client) error { return c.Append(ctx, "numbers", 3) },
			wantGroup: commandGroup,
			wantBody:  `{"action":"Append","list":"numbers","value":3}`,
		},
		{
			name:      "add all",
			send:      func(ctx context.Context, c *Client) error { return c.AddAll(ctx, "numbers", 1, 7, 8) },
			wantGroup: commandGroup,
			wantBody:  `{"action":"AddAll","list":"numbers","index":1,"values":[7,8]}`,
		},
		{
			name:      "insert at",
			send:      func(ctx context.Context, c *Client) error { return c.InsertAt(ctx, "numbers", 2, 5) },
			wantGroup: commandGroup,
			wantBody:  `{"action":"InsertAt","list":"numbers","value":5,"index":2}`,
		},
		{
			name:      "list all",
			send:      func(ctx context.Context, c *Client) error { return c.Send(ctx, &types.Command{Action: types.ListAll}) },
			wantGroup: commandGroup,
			wantBody:  `{"action":"ListAll"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := mocks.NewMockQueue(ctrl)
			q.EXPECT().Send(gomock.Any(), tt.wantGroup, tt.wantBody).Return(nil)

			if err := tt.send(context.Background(), &Client{queue: q}); err != nil {
				t.Fatalf("send: %v", err)
			}
		})
	}
}

func TestClientSendKeepsCrossListCommandsOrdered(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockQueue(ctrl)
	c := &Client{queue: q}
	ctx := context.Background()

	gomock.InOrder(
		q.EXPECT().Send(gomock.Any(), commandGroup, `{"action":"Append","list":"a","value":1}`).Return(nil),
		q.EXPECT().Send(gomock.Any(), commandGroup, `{"action":"CreateList","list":"b","other":"a"}`).Return(nil),
		q.EXPECT().Send(gomock.Any(), commandGroup, `{"action":"Equals","list":"b","other":"a"}`).Return(nil),
	)

	if err := c.Append(ctx, "a", 1); err != nil {
		t.Fatal(err)
	}
	if err := c.Send(ctx, &types.Command{Action: types.CreateList, List: "b", Other: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Send(ctx, &types.Command{Action: types.Equals, List: "b", Other: "a"}); err != nil {
		t.Fatal(err)
	}
}

func TestClientSendRejectsInvalidCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockQueue(ctrl)
	c := &Client{queue: q}

	if err := c.Show(context.Background(), ""); !errors.Is(err, types.ErrMissingList) {
		t.Fatalf("Show: %v, want ErrMissingList", err)
	}
}

func TestClientsManagerReusesClientsPerId(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mocks.NewMockQueue(ctrl)

	input := strings.NewReader(strings.Join([]string{
		`alice {"action":"CreateList","list":"a"}`,
		`garbage`,
		`bob {"action":"Append","list":"a","value":1}`,
		``,
		`alice {"action":"Show","list":"a"}`,
	}, "\n"))

	created := 0
	newClient := func() (*Client, error) {
		created++
		return &Client{queue: q}, nil
	}
	cm := newClientsManager(input, newClient, time.Minute, logger.Discard())
	cm.pollInterval = 10 * time.Millisecond
	t.Cleanup(cm.Cancel)

	gomock.InOrder(
		q.EXPECT().Send(gomock.Any(), commandGroup, `{"action":"CreateList","list":"a"}`).Return(nil),
		q.EXPECT().Send(gomock.Any(), commandGroup, `{"action":"Append","list":"a","value":1}`).Return(nil),
		q.EXPECT().Send(gomock.Any(), commandGroup, `{"action":"Show","list":"a"}`).DoAndReturn(func(context.Context, string, string) error {
			cm.Cancel()
			return nil
		}),
	)

	if err := cm.ListenClientActions(); err != nil {
		t.Fatalf("ListenClientActions: %v", err)
	}
	if created != 2 {
		t.Errorf("created %d clients, want 2", created)
	}
}

func TestClientsManagerInputError(t *testing.T) {
	wantErr := errors.New("disk gone")
	cm := newClientsManager(iotest.ErrReader(wantErr), nil, time.Minute, logger.Discard())
	t.Cleanup(cm.Cancel)

	if err := cm.ListenClientActions(); !errors.Is(err, wantErr) {
		t.Fatalf("ListenClientActions: %v, want %v", err, wantErr)
	}
}

func TestRemoveUnusedClients(t *testing.T) {
	cm := newClientsManager(strings.NewReader(""), nil, time.Second, logger.Discard())
	t.Cleanup(cm.Cancel)

	cm.clients["stale"] = &ClientUsage{lastUsed: time.Now().Add(-time.Minute)}
	cm.clients["fresh"] = &ClientUsage{lastUsed: time.Now()}

	cm.removeUnusedClients()

	if _, ok := cm.clients["stale"]; ok {
		t.Errorf("stale client was kept")
	}
	if _, ok := cm.clients["fresh"]; !ok {
		t.Errorf("fresh client was removed")
	}
}

func TestParseClientAction(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantClient string
		wantAction types.Action
		wantErr    bool
	}{
		{name: "valid", input: `c1 {"action":"Append","list":"a","value":2}`, wantClient: "c1", wantAction: types.Append},
		{name: "spaces inside json", input: `c2 {"action": "Show", "list": "a"}`, wantClient: "c2", wantAction: types.Show},
		{name: "no command", input: `c1`, wantErr: true},
		{name: "bad json", input: `c1 {"action":`, wantErr: true},
		{name: "null", input: `c1 null`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clientId, cmd, err := parseClientAction(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseClientAction: %v", err)
			}
			if clientId != tt.wantClient || cmd.Action != tt.wantAction {
				t.Errorf("got %q %q, want %q %q", clientId, cmd.Action, tt.wantClient, tt.wantAction)
			}
		})
	}
}

func TestReadLineWithoutTrailingNewline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("c1 {\"action\":\"ListAll\"}"))

	line, err := readLine(context.Background(), r, time.Millisecond)
	if err != nil {
		t.Fatalf("readLine: %v", err)
	}
	if line != `c1 {"action":"ListAll"}` {
		t.Errorf("line: %q", line)
	}
}

func TestReadLineStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := bufio.NewReader(strings.NewReader("partial"))

	if _, err := readLine(ctx, r, time.Millisecond); !errors.Is(err, context.Canceled) {
		t.Fatalf("readLine: %v, want context.Canceled", err)
	}
}
