package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"dlist/config"
	"dlist/logger"
	"dlist/queue"
	"dlist/types"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/inconshreveable/log15"
)

type Server struct {
	store       *Store
	queue       queue.Queue
	waitTime    int64
	maxMessages int64
	actionLog   io.Writer
	ctx         context.Context
	Cancel      context.CancelFunc
	logger      log15.Logger
	logsMux     sync.Mutex
}

func NewServer(conf *config.Config, store *Store) (*Server, error) {
	q, err := queue.New(conf.Aws)
	if err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(conf.LogFilePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}

	return newServer(q, store, logFile, logger.New("server", conf.LogLevel), conf.ServerWaitTimeSeconds, conf.MaxMessages), nil
}

func newServer(q queue.Queue, store *Store, actionLog io.Writer, logger log15.Logger, waitTime, maxMessages int64) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		store:       store,
		queue:       q,
		waitTime:    waitTime,
		maxMessages: maxMessages,
		actionLog:   actionLog,
		ctx:         ctx,
		Cancel:      cancel,
		logger:      logger,
	}
}

// StartServer consumes the queue until Cancel is called. Commands are
// applied one at a time in delivery order.
func (s *Server) StartServer() error {
	s.logger.Debug("Listening queue!")
	messagesChan := make(chan *sqs.Message)
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.listenMessages(messagesChan)
	}()

	for {
		select {
		case <-s.ctx.Done():
			return nil
		case err := <-errChan:
			return err
		case message := <-messagesChan:
			if err := s.processMessage(message); err != nil {
				return err
			}
		}
	}
}

func (s *Server) listenMessages(messagesChan chan<- *sqs.Message) error {
	for {
		select {
		case <-s.ctx.Done():
			return nil
		default:
			messages, err := s.queue.Receive(s.ctx, s.maxMessages, s.waitTime)
			if err != nil {
				if errors.Is(s.ctx.Err(), context.Canceled) {
					return nil
				}
				s.logger.Error("Error while receiving messages", "error", err)
				return err
			}
			for _, message := range messages {
				select {
				case messagesChan <- message:
				case <-s.ctx.Done():
					return nil
				}
			}
		}
	}
}

// processMessage applies one queued command and deletes the message.
// Undecodable messages are logged and deleted as well.
func (s *Server) processMessage(message *sqs.Message) error {
	if message == nil {
		return nil
	}

	var cmd *types.Command
	if err := json.Unmarshal([]byte(aws.StringValue(message.Body)), &cmd); err != nil || cmd == nil {
		s.logger.Error("Cannot unmarshal message", "error", err, "body", aws.StringValue(message.Body))
	} else {
		s.writeActionLog(s.processCommand(cmd))
	}

	if err := s.queue.Delete(s.ctx, message.ReceiptHandle); err != nil {
		s.logger.Error("Error while deleting message", "error", err)
		return err
	}

	return nil
}

func (s *Server) processCommand(cmd *types.Command) (logMessage string) {
	result, err := s.store.Apply(cmd)
	if err != nil {
		s.logger.Warn("Command failed", "action", cmd.Action, "list", cmd.List, "error", err)
		return fmt.Sprintf("%s() failed. %s", cmd.Action, err)
	}

	s.logger.Debug("Command applied", "action", cmd.Action, "list", cmd.List, "output", result.Output)
	return fmt.Sprintf("%s() done. List(%s) %s", result.Action, result.List, result.Output)
}

func (s *Server) writeActionLog(line string) {
	s.logsMux.Lock()
	defer s.logsMux.Unlock()

	if _, err := fmt.Fprintf(s.actionLog, "%s || %s\n", time.Now().Format(time.RFC822), line); err != nil {
		s.logger.Error("Cannot write action log", "error", err)
	}
}
