package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"uptask-api/pkg/logger"
)

// Job งาน maintenance หนึ่งรอบ ctx จะถูก cancel เมื่อเกิน timeout ของ job
type Job func(ctx context.Context) error

// Scheduler รันงาน maintenance ตาม cron (ตอนนี้มีแค่ purge token ที่หมดอายุ)
type Scheduler interface {
	Register(name, cronExpr string, timeout time.Duration, job Job) error
	Jobs() []JobStatus
	Start()
	Stop()
	IsRunning() bool
}

// JobStatus สถานะของ job ณ เวลาที่เรียก Jobs()
type JobStatus struct {
	Name      string
	Cron      string
	Runs      int
	Failures  int
	LastRun   time.Time
	LastError string
	NextRun   time.Time
}

type entry struct {
	status  JobStatus
	timeout time.Duration
	handle  *gocron.Job
}

type CronScheduler struct {
	cron *gocron.Scheduler
	log  *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	running bool
}

func New() *CronScheduler {
	cron := gocron.NewScheduler(time.UTC)
	// รอบใหม่ไม่เริ่มถ้ารอบก่อนยังไม่จบ
	cron.SingletonModeAll()

	return &CronScheduler{
		cron:    cron,
		log:     logger.Component("scheduler"),
		entries: make(map[string]*entry),
	}
}

func (s *CronScheduler) Register(name, cronExpr string, timeout time.Duration, job Job) error {
	if timeout <= 0 {
		return fmt.Errorf("job %q: timeout must be positive", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.entries[name]; dup {
		return fmt.Errorf("job %q already registered", name)
	}

	e := &entry{
		status:  JobStatus{Name: name, Cron: cronExpr},
		timeout: timeout,
	}
	handle, err := s.cron.Cron(cronExpr).Do(s.run, e, job)
	if err != nil {
		return fmt.Errorf("job %q: %w", name, err)
	}
	e.handle = handle
	s.entries[name] = e

	s.log.Info("Job registered", "job", name, "cron", cronExpr, "timeout", timeout.String())
	return nil
}

// run ถูกเรียกโดย gocron ใน goroutine ของมันเอง
func (s *CronScheduler) run(e *entry, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	started := time.Now()
	err := job(ctx)

	s.mu.Lock()
	e.status.Runs++
	e.status.LastRun = started
	e.status.LastError = ""
	if err != nil {
		e.status.Failures++
		e.status.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("Job failed", "job", e.status.Name, "duration", time.Since(started).String(), "error", err)
		return
	}
	s.log.Debug("Job finished", "job", e.status.Name, "duration", time.Since(started).String())
}

// Jobs เรียงตามชื่อ NextRun เป็นค่า zero จนกว่าจะ Start (gocron คำนวณตอน StartAsync)
func (s *CronScheduler) Jobs() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.entries))
	for _, e := range s.entries {
		st := e.status
		st.NextRun = e.handle.NextRun()
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *CronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.StartAsync()
	s.running = true
	s.log.Info("Scheduler started", "jobs", len(s.entries))
}

func (s *CronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	s.log.Info("Scheduler stopped")
}

func (s *CronScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// ValidateCronExpression ใช้ตอนโหลด config เพื่อให้ cron ผิดล้มตั้งแต่ start
func ValidateCronExpression(cronExpr string) error {
	check := gocron.NewScheduler(time.UTC)
	if _, err := check.Cron(cronExpr).Do(func() {}); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}
	return nil
}
