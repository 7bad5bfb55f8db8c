package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"dlist/config"
	"dlist/logger"
	"dlist/queue"
	"dlist/types"

	"github.com/inconshreveable/log15"
)

// commandGroup is the single FIFO message group for every command.
// CreateList and Equals read the list named by Other, so per-list groups
// could apply them before earlier writes to that list.
const commandGroup = "lists"

type Client struct {
	queue queue.Queue
}

func NewClient(conf *config.Config) (*Client, error) {
	q, err := queue.New(conf.Aws)
	if err != nil {
		return nil, err
	}

	return &Client{queue: q}, nil
}

// Send publishes cmd. All commands share one message group, so the server
// sees them in the order they were sent.
func (c *Client) Send(ctx context.Context, cmd *types.Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	req, err := json.Marshal(cmd)
	if err != nil {
		return err
	}

	return c.queue.Send(ctx, commandGroup, string(req))
}

func (c *Client) CreateList(ctx context.Context, name string) error {
	return c.Send(ctx, &types.Command{Action: types.CreateList, List: name})
}

func (c *Client) Append(ctx context.Context, name string, value int) error {
	return c.Send(ctx, &types.Command{Action: types.Append, List: name, Value: value})
}

func (c *Client) InsertAt(ctx context.Context, name string, index, value int) error {
	return c.Send(ctx, &types.Command{Action: types.InsertAt, List: name, Index: index, Value: value})
}

func (c *Client) AddAll(ctx context.Context, name string, index int, values ...int) error {
	return c.Send(ctx, &types.Command{Action: types.AddAll, List: name, Index: index, Values: values})
}

func (c *Client) Remove(ctx context.Context, name string, index int) error {
	return c.Send(ctx, &types.Command{Action: types.Remove, List: name, Index: index})
}

func (c *Client) Show(ctx context.Context, name string) error {
	return c.Send(ctx, &types.Command{Action: types.Show, List: name})
}

type ClientsManager struct {
	clients      map[string]*ClientUsage
	input        io.Reader
	newClient    func() (*Client, error)
	idleTimeout  time.Duration
	pollInterval time.Duration
	logger       log15.Logger
	mux          sync.Mutex
	ctx          context.Context
	Cancel       context.CancelFunc
}

type ClientUsage struct {
	client   *Client
	lastUsed time.Time
}

func NewClientsManager(cfg *config.Config) (manager *ClientsManager, err error) {
	var input io.Reader = os.Stdin
	if len(cfg.ClientsInputPath) != 0 {
		input, err = os.Open(cfg.ClientsInputPath)
		if err != nil {
			return nil, err
		}
	}

	newClient := func() (*Client, error) {
		return NewClient(cfg)
	}

	return newClientsManager(input, newClient, time.Duration(cfg.ClientIdleSeconds)*time.Second, logger.New("client", cfg.LogLevel)), nil
}

func newClientsManager(input io.Reader, newClient func() (*Client, error), idleTimeout time.Duration, logger log15.Logger) *ClientsManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &ClientsManager{
		clients:      make(map[string]*ClientUsage),
		input:        input,
		newClient:    newClient,
		idleTimeout:  idleTimeout,
		pollInterval: time.Second,
		logger:       logger,
		ctx:          ctx,
		Cancel:       cancel,
	}
}

// ListenClientActions reads "<clientId> <command>" lines until Cancel is
// called or the input fails. Lines are sent in the order they are read.
func (cm *ClientsManager) ListenClientActions() error {
	if cm.input == os.Stdin {
		fmt.Println("Write clients tasks here in format <clientId> <command>")
	}

	ticker := setInterval(cm.ctx, cm.removeUnusedClients, cm.idleTimeout)
	defer ticker.Stop()

	lines, errChan := SubscribeToFileInput(cm.ctx, cm.input, cm.pollInterval)

	for {
		select {
		case <-cm.ctx.Done():
			return nil
		case line := <-lines:
			if err := cm.processClientAction(line); err != nil {
				cm.logger.Error("Cannot process client action", "line", line, "error", err)
			}
		case err := <-errChan:
			if err != nil {
				return err
			}
		}
	}
}

func (cm *ClientsManager) removeUnusedClients() {
	cm.mux.Lock()
	defer cm.mux.Unlock()
	for clientId, clientUsage := range cm.clients {
		if time.Since(clientUsage.lastUsed) > cm.idleTimeout {
			cm.logger.Debug("Removing idle client", "client", clientId)
			delete(cm.clients, clientId)
		}
	}
}

func (cm *ClientsManager) processClientAction(inputStr string) error {
	clientId, cmd, err := parseClientAction(inputStr)
	if err != nil {
		return err
	}

	cm.mux.Lock()
	defer cm.mux.Unlock()

	usage, ok := cm.clients[clientId]
	if !ok {
		client, err := cm.newClient()
		if err != nil {
			return err
		}
		usage = &ClientUsage{client: client}
		cm.clients[clientId] = usage
	}
	usage.lastUsed = time.Now()

	return usage.client.Send(cm.ctx, cmd)
}
