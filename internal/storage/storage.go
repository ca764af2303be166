// /internal/storage/storage.go
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"parley/datastore"
)

const commandHistoryLimit int = 20

type Storage struct {
	ds *datastore.Store
}

type CommandHistoryRecord struct {
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	GuildName   string    `json:"guild_name"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Command     string    `json:"command"`
	Param       string    `json:"param"`
	Datetime    time.Time `json:"datetime"`
}

type Reminder struct {
	ID        string        `json:"id"`
	GuildID   string        `json:"guild_id"`
	ChannelID string        `json:"channel_id"`
	UserID    string        `json:"user_id"`
	Text      string        `json:"text"`
	DueAt     time.Time     `json:"due_at"`
	Every     time.Duration `json:"every"` // zero for one-shot reminders
}

type Record struct {
	Prefix              string                 `json:"prefix,omitempty"`
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history"`
	Reminders           map[string]Reminder    `json:"reminders"` // key = reminder ID
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.Open(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// Helper function to get or create a Record for a guild
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		newRecord := &Record{
			CommandsHistoryList: []CommandHistoryRecord{},
			Reminders:           map[string]Reminder{},
		}
		s.ds.Set(guildID, newRecord)
		return newRecord, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record Record
	err = json.Unmarshal(jsonData, &record)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}

	if record.Reminders == nil {
		record.Reminders = map[string]Reminder{}
	}

	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}

	return &record, nil
}

// AppendCommandToHistory appends a command history record for a guild
func (s *Storage) AppendCommandToHistory(guildID string, command CommandHistoryRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandsHistoryList = append(record.CommandsHistoryList, command)
	s.ds.Set(guildID, record)
	return nil
}

func (s *Storage) FetchCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	return record.CommandsHistoryList, nil
}

// GetPrefix returns the guild's custom command prefix, or "" when the guild
// never set one and the configured default should apply.
func (s *Storage) GetPrefix(guildID string) (string, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return "", err
	}
	return record.Prefix, nil
}

func (s *Storage) SetPrefix(guildID string, prefix string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.Prefix = prefix
	s.ds.Set(guildID, record)
	return nil
}

func (s *Storage) AddReminder(guildID string, reminder Reminder) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.Reminders[reminder.ID] = reminder
	s.ds.Set(guildID, record)
	return nil
}

func (s *Storage) DeleteReminder(guildID string, reminderID string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	if _, exists := record.Reminders[reminderID]; !exists {
		return fmt.Errorf("no reminder %s for this guild", reminderID)
	}

	delete(record.Reminders, reminderID)
	s.ds.Set(guildID, record)
	return nil
}

// Reminders returns the guild's reminders ordered by due time.
func (s *Storage) Reminders(guildID string) ([]Reminder, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	reminders := make([]Reminder, 0, len(record.Reminders))
	for _, r := range record.Reminders {
		reminders = append(reminders, r)
	}
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].DueAt.Before(reminders[j].DueAt)
	})
	return reminders, nil
}

// AllReminders returns every stored reminder across guilds, used to restore
// pending jobs after a restart.
func (s *Storage) AllReminders() ([]Reminder, error) {
	var all []Reminder
	for _, guildID := range s.ds.Keys() {
		reminders, err := s.Reminders(guildID)
		if err != nil {
			return nil, err
		}
		all = append(all, reminders...)
	}
	return all, nil
}
