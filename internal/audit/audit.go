// Package audit records who did what against the complaint system. Events
// go to a JSONL file, a Redis channel and a Telegram chat — every sink is
// optional and every delivery failure is contained and logged, so auditing
// can never fail or slow down the request that triggered it. Callers fire
// Record from their own goroutine.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Operation types, one per audited surface.
const (
	OpCreateComplaint = "CREATE_COMPLAINT"
	OpConsultAll      = "CONSULT_COMPLAINTS"
	OpConsultByEntity = "CONSULT_BY_ENTITY"
	OpGeneralReport   = "GENERAL_REPORT"
	OpUpdateStatus    = "UPDATE_STATUS"
	OpDeleteComplaint = "DELETE_COMPLAINT"
)

// Event is one audited operation.
type Event struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Op         string         `json:"operation_type"`
	ClientIP   string         `json:"ip"`
	UserAgent  string         `json:"user_agent,omitempty"`
	EntityName string         `json:"entity_name,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// Publisher is the slice of the Redis client the logger needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Notifier is the slice of the Telegram bot API the logger needs.
type Notifier interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Logger delivers audit events to the configured sinks.
type Logger struct {
	enabled bool
	file    string

	mu sync.Mutex // serializes file appends

	publisher Publisher
	channel   string

	notifier Notifier
	chatID   int64
}

// NewLogger creates a Logger writing JSONL to file when enabled. Redis and
// Telegram sinks attach separately.
func NewLogger(file string, enabled bool) *Logger {
	return &Logger{enabled: enabled, file: file}
}

// AttachRedis adds a Redis pub/sub sink publishing events to channel.
func (l *Logger) AttachRedis(p Publisher, channel string) {
	l.publisher = p
	l.channel = channel
}

// AttachTelegram adds a Telegram notification sink.
func (l *Logger) AttachTelegram(n Notifier, chatID int64) {
	l.notifier = n
	l.chatID = chatID
}

// Record delivers the event to every attached sink. It never returns an
// error: failures are logged and swallowed so the caller's request path is
// unaffected.
func (l *Logger) Record(event Event) {
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if len(event.UserAgent) > 200 {
		event.UserAgent = event.UserAgent[:200]
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR: Failed to marshal audit event: %v", err)
		return
	}

	if l.enabled && l.file != "" {
		l.appendToFile(payload)
	}
	if l.publisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := l.publisher.Publish(ctx, l.channel, string(payload)).Err(); err != nil {
			log.Printf("ERROR: Failed to publish audit event: %v", err)
		}
		cancel()
	}
	if l.notifier != nil {
		msg := tgbotapi.NewMessage(l.chatID, formatNotification(event))
		if _, err := l.notifier.Send(msg); err != nil {
			log.Printf("ERROR: Failed to send audit notification: %v", err)
		}
	}

	log.Printf("INFO: [AUDIT] %s from %s", event.Op, event.ClientIP)
}

func (l *Logger) appendToFile(line []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("ERROR: Failed to create audit log directory: %v", err)
			return
		}
	}
	f, err := os.OpenFile(l.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("ERROR: Failed to open audit log: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		log.Printf("ERROR: Failed to append audit event: %v", err)
	}
}

var opTitles = map[string]string{
	OpCreateComplaint: "Nueva queja registrada",
	OpConsultAll:      "Consulta general de quejas",
	OpConsultByEntity: "Consulta por entidad",
	OpGeneralReport:   "Reporte general consultado",
	OpUpdateStatus:    "Estado de queja actualizado",
	OpDeleteComplaint: "Queja eliminada",
}

func formatNotification(e Event) string {
	title, ok := opTitles[e.Op]
	if !ok {
		title = "Actividad en el sistema de quejas"
	}
	text := fmt.Sprintf("%s\nIP: %s\nFecha: %s", title, e.ClientIP, e.Timestamp.Format(time.RFC3339))
	if e.EntityName != "" {
		text += "\nEntidad: " + e.EntityName
	}
	return text
}
