package nats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"uptask-api/pkg/logger"
)

const (
	clientName     = "uptask-api"
	reconnectDelay = 2 * time.Second
	setupTimeout   = 10 * time.Second
)

// Client connection เดียวของ process ใช้ทั้ง core NATS (board events) และ JetStream (mail)
type Client struct {
	conn *nats.Conn
	js   jetstream.JetStream
	log  *slog.Logger
}

// mailStream work queue: message หายไปเมื่อ mail worker ack
// MaxAge สั้นเพราะรหัสในเมลหมดอายุภายใน TOKEN_TTL อยู่แล้ว
func mailStream() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:        MailStreamName,
		Description: "Account confirmation and password reset mails",
		Subjects:    []string{SubjectMailConfirm, SubjectMailReset},
		Retention:   jetstream.WorkQueuePolicy,
		Storage:     jetstream.FileStorage,
		MaxAge:      time.Hour,
		Replicas:    1,
	}
}

// Connect ต่อ NATS แบบ reconnect ไม่จำกัด แล้วประกาศ mail stream
// ถ้า stream ประกาศไม่ได้ connection จะถูกปิดและคืน error
func Connect(url string) (*Client, error) {
	log := logger.Component("nats")

	nc, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(reconnectDelay),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("Disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("Reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	if _, err := js.CreateOrUpdateStream(ctx, mailStream()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("declare stream %s: %w", MailStreamName, err)
	}

	log.Info("Connected", "url", nc.ConnectedUrl(), "stream", MailStreamName)
	return &Client{conn: nc, js: js, log: log}, nil
}

func (c *Client) Conn() *nats.Conn {
	return c.conn
}

func (c *Client) JetStream() jetstream.JetStream {
	return c.js
}

// IsConnected ใช้เป็น health check
func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Close flush publish ที่ค้างก่อนปิด
func (c *Client) Close() error {
	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}
	err := c.conn.Drain()
	c.log.Info("Connection closed")
	return err
}
