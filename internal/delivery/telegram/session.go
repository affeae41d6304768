package telegram

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/usecase"
)

// uploadSession per-chat settings and the files of the pair being collected
type uploadSession struct {
	Options    entity.Options
	Uploads    []*pendingUpload // ordered by message ID, at most two
	LastUpdate time.Time
}

// pendingUpload a file slot reserved in message order; Loaded turns true
// once its download finished
type pendingUpload struct {
	MessageID int
	Upload    usecase.Upload
	Loaded    bool
}

// uploadState what completing a download led to
type uploadState int

const (
	uploadWaitingForGrade uploadState = iota // the target sheet is in, the grade sheet was not sent yet
	uploadWaitingForPeer                     // both files were sent, the other one is still downloading
	uploadReady                              // both files are in
	uploadDropped                            // the slot was reset or expired meanwhile
)

// pendingUploadTTL a target sheet waiting longer than this is dropped
const pendingUploadTTL = 30 * time.Minute

var errUploadsBusy = errors.New("two files are already being processed, wait for the result")

type sessionStore struct {
	mu       sync.Mutex
	defaults entity.Options
	sessions map[int64]*uploadSession
	now      func() time.Time
}

func newSessionStore(defaults entity.Options) *sessionStore {
	return &sessionStore{
		defaults: defaults,
		sessions: make(map[int64]*uploadSession),
		now:      time.Now,
	}
}

// get must be called with mu held
func (s *sessionStore) get(chatID int64) *uploadSession {
	session, ok := s.sessions[chatID]
	if !ok {
		opts := s.defaults
		if opts.Month == "" {
			opts.Month = usecase.FirstOfMonth(s.now())
		}
		session = &uploadSession{Options: opts}
		s.sessions[chatID] = session
	}
	if len(session.Uploads) > 0 && s.now().Sub(session.LastUpdate) > pendingUploadTTL {
		session.Uploads = nil
	}
	session.LastUpdate = s.now()
	return session
}

func (s *sessionStore) options(chatID int64) entity.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(chatID).Options
}

// apply changes one setting of the chat and returns the new options
func (s *sessionStore) apply(chatID int64, command, args string) (entity.Options, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.get(chatID)
	opts := session.Options
	if err := applySetting(&opts, command, args); err != nil {
		return session.Options, err
	}
	session.Options = opts
	return opts, nil
}

// reserve claims a slot for a document before it is downloaded. Slots are
// kept in message order, so the earlier message is the target sheet even
// when its download finishes last.
func (s *sessionStore) reserve(chatID int64, messageID int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.get(chatID)
	if len(session.Uploads) >= 2 {
		return errUploadsBusy
	}

	slot := &pendingUpload{MessageID: messageID, Upload: usecase.Upload{Name: name}}
	session.Uploads = append(session.Uploads, slot)
	sort.Slice(session.Uploads, func(i, j int) bool {
		return session.Uploads[i].MessageID < session.Uploads[j].MessageID
	})
	return nil
}

// complete stores the downloaded bytes of a reserved slot. Once both slots
// are loaded it hands back the pair and clears it; settings stay.
func (s *sessionStore) complete(chatID int64, messageID int, data []byte) (main, grade usecase.Upload, opts entity.Options, state uploadState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.get(chatID)
	found := false
	for _, slot := range session.Uploads {
		if slot.MessageID == messageID {
			slot.Upload.Data = data
			slot.Loaded = true
			found = true
		}
	}
	switch {
	case !found:
		return usecase.Upload{}, usecase.Upload{}, session.Options, uploadDropped
	case len(session.Uploads) < 2:
		return usecase.Upload{}, usecase.Upload{}, session.Options, uploadWaitingForGrade
	case !session.Uploads[0].Loaded || !session.Uploads[1].Loaded:
		return usecase.Upload{}, usecase.Upload{}, session.Options, uploadWaitingForPeer
	}

	main, grade = session.Uploads[0].Upload, session.Uploads[1].Upload
	session.Uploads = nil
	return main, grade, session.Options, uploadReady
}

// release frees the slot of a document whose download failed
func (s *sessionStore) release(chatID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[chatID]
	if !ok {
		return
	}
	for i, slot := range session.Uploads {
		if slot.MessageID == messageID {
			session.Uploads = append(session.Uploads[:i], session.Uploads[i+1:]...)
			return
		}
	}
}

// pendingMain name of the target sheet waiting for its grade sheet
func (s *sessionStore) pendingMain(chatID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[chatID]
	if !ok || len(session.Uploads) == 0 {
		return "", false
	}
	return session.Uploads[0].Upload.Name, true
}

func (s *sessionStore) reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// applySetting handles /month, /brand, /mode, /strict and /headerrow
func applySetting(opts *entity.Options, command, args string) error {
	args = strings.TrimSpace(args)

	switch command {
	case "month":
		if args == "" {
			return fmt.Errorf("usage: /month 2026-01-01")
		}
		opts.Month = usecase.NormalizeMonth(args)
	case "brand":
		if args == "" {
			return fmt.Errorf("usage: /brand freemir")
		}
		opts.Brand = args
	case "mode":
		mode, err := entity.ParseSelectionMode(args)
		if err != nil {
			return err
		}
		opts.Selection = mode
	case "strict":
		on, err := parseSwitch(args)
		if err != nil {
			return err
		}
		opts.StrictSeparator = on
	case "headerrow":
		row, err := strconv.Atoi(args)
		if err != nil || row < 1 {
			return fmt.Errorf("usage: /headerrow 4 (1-based row of the header)")
		}
		opts.HeaderRow = row - 1
	default:
		return fmt.Errorf("unknown setting %q", command)
	}
	return nil
}

func parseSwitch(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("want on or off, got %q", raw)
	}
}

func describeOptions(opts entity.Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Month: %s\n", opts.Month)
	fmt.Fprintf(&sb, "🏷 Brand: %s\n", opts.Brand)
	fmt.Fprintf(&sb, "📄 Header row: %d\n", opts.HeaderRow+1)
	fmt.Fprintf(&sb, "🔎 Store columns: %s", opts.Selection)
	if opts.Selection == entity.SelectionPositional {
		fmt.Fprintf(&sb, " (%d..%d)", opts.PositionalStart, opts.PositionalEnd)
	}
	sb.WriteString("\n")
	if opts.StrictSeparator {
		sb.WriteString("✂️ Separator: \" - \" only\n")
	} else {
		sb.WriteString("✂️ Separator: \"-\"\n")
	}
	return sb.String()
}
