package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"uptask-api/pkg/scheduler"
)

type HealthHandler struct {
	service string
	checks  map[string]func() bool
	jobs    func() []scheduler.JobStatus
}

func NewHealthHandler(service string, checks map[string]func() bool, jobs func() []scheduler.JobStatus) *HealthHandler {
	return &HealthHandler{
		service: service,
		checks:  checks,
		jobs:    jobs,
	}
}

type jobHealth struct {
	Name      string     `json:"name"`
	Cron      string     `json:"cron"`
	Runs      int        `json:"runs"`
	Failures  int        `json:"failures"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
	NextRun   *time.Time `json:"next_run,omitempty"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Health dependency ที่เป็น optional (redis, nats) ล่มไม่ทำให้ status เป็น error
// job ที่ล้มเหลวก็แค่รายงาน last_error
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	deps := make(fiber.Map, len(h.checks))
	for name, check := range h.checks {
		if check() {
			deps[name] = "up"
		} else {
			deps[name] = "down"
		}
	}

	jobs := []jobHealth{}
	if h.jobs != nil {
		for _, st := range h.jobs() {
			jobs = append(jobs, jobHealth{
				Name:      st.Name,
				Cron:      st.Cron,
				Runs:      st.Runs,
				Failures:  st.Failures,
				LastRun:   optionalTime(st.LastRun),
				LastError: st.LastError,
				NextRun:   optionalTime(st.NextRun),
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":       "ok",
		"service":      h.service,
		"dependencies": deps,
		"jobs":         jobs,
	})
}
