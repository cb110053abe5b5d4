package nats

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"

	"uptask-api/pkg/logger"
)

// boardBacklog จำนวน message ที่รอ dispatch ได้ก่อน NATS เริ่ม drop (slow consumer)
const boardBacklog = 256

// BoardEventHandler ถูกเรียกทีละ event ตามลำดับที่ได้รับ
type BoardEventHandler func(event *BoardEvent)

// Subscriber รับ events.project.> ทุก instance (ไม่ใช้ queue group เพราะแต่ละ instance
// มี websocket client ของตัวเอง)
type Subscriber struct {
	conn    *nats.Conn
	handler BoardEventHandler
	log     *slog.Logger

	mu   sync.Mutex
	sub  *nats.Subscription
	stop chan struct{}
	done chan struct{}
}

func NewSubscriber(conn *nats.Conn) *Subscriber {
	return &Subscriber{
		conn: conn,
		log:  logger.Component("board-subscriber"),
	}
}

// OnEvent ตั้ง handler (ต้องเรียกก่อน Start)
func (s *Subscriber) OnEvent(handler BoardEventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

func (s *Subscriber) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		return nil
	}

	msgs := make(chan *nats.Msg, boardBacklog)
	sub, err := s.conn.ChanSubscribe(SubjectProjectEvents+".>", msgs)
	if err != nil {
		return err
	}

	s.sub = sub
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.dispatch(msgs, s.stop, s.done)

	s.log.Info("Subscribed", "subject", SubjectProjectEvents+".>")
	return nil
}

// dispatch channel ของ NATS ไม่ถูกปิดโดย library จึงหยุดด้วย stop แล้ว drain ที่เหลือ
func (s *Subscriber) dispatch(msgs <-chan *nats.Msg, stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case msg := <-msgs:
			s.handleMessage(msg)
		case <-stop:
			for {
				select {
				case msg := <-msgs:
					s.handleMessage(msg)
				default:
					return
				}
			}
		}
	}
}

func (s *Subscriber) handleMessage(msg *nats.Msg) {
	var event BoardEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.log.Warn("Dropping malformed board event", "subject", msg.Subject, "error", err)
		return
	}
	if event.ProjectID == "" {
		event.ProjectID = strings.TrimPrefix(msg.Subject, SubjectProjectEvents+".")
	}

	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Board event handler panicked", "type", event.Type, "error", r)
		}
	}()
	handler(&event)
}

// Stop unsubscribe แล้วรอให้ message ที่ค้างใน channel ถูก dispatch จนหมด
func (s *Subscriber) Stop() error {
	s.mu.Lock()
	sub, stop, done := s.sub, s.stop, s.done
	s.sub, s.stop, s.done = nil, nil, nil
	s.mu.Unlock()

	if sub == nil {
		return nil
	}

	err := sub.Unsubscribe()
	close(stop)
	<-done

	s.log.Info("Unsubscribed")
	return err
}

func (s *Subscriber) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub != nil
}
