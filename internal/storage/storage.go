package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Tiliavir/worklog/internal/config"
	"github.com/Tiliavir/worklog/internal/model"
)

// ErrEntryNotFound is returned when an entry id does not exist in the store.
var ErrEntryNotFound = errors.New("entry not found")

// Store is the persistence layer for users and entries. A Store returned by
// Open works on the database directly; the Store embedded in a Tx works
// inside that transaction.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open connects to the database described by cfg and migrates the schema.
func Open(cfg config.Config, lg *slog.Logger) (*Store, error) {
	if lg == nil {
		lg = slog.Default()
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormLogger(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("storage error opening %s database: %w", cfg.Database.Driver, err)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("storage error: %w", err)
		}
		// One writer at a time; a second connection would block on the
		// open transaction of the first.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Entry{}); err != nil {
		return nil, fmt.Errorf("storage error migrating schema: %w", err)
	}

	lg.Debug("store opened", slog.String("driver", cfg.Database.Driver))
	return &Store{db: db, logger: lg}, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o700); err != nil {
			return nil, fmt.Errorf("storage error creating directories: %w", err)
		}
		sep := "?"
		if strings.Contains(cfg.DSN, "?") {
			sep = "&"
		}
		return sqlite.Open(cfg.DSN + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), nil
	case config.DriverPostgres:
		pcfg, err := pgx.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage error parsing postgres DSN: %w", err)
		}
		return postgres.New(postgres.Config{Conn: stdlib.OpenDB(*pcfg)}), nil
	default:
		return nil, fmt.Errorf("storage error: unsupported driver %q", cfg.Driver)
	}
}

// gormLogger maps the configured slog level onto gorm's logger. SQL
// statements are only traced at debug.
func gormLogger(level slog.Level) logger.Interface {
	gl := logger.Warn
	switch {
	case level <= slog.LevelDebug:
		gl = logger.Info
	case level >= slog.LevelError:
		gl = logger.Silent
	}
	return logger.New(
		log.New(os.Stderr, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gl,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Tx is a Store scoped to one database transaction. It must be finished
// with exactly one of Commit or Rollback.
type Tx struct {
	*Store
}

// Begin starts a transaction. Transactions do not nest.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("storage error starting transaction: %w", tx.Error)
	}
	return &Tx{Store: &Store{db: tx, logger: s.logger}}, nil
}

// Commit makes every write of the transaction durable.
func (t *Tx) Commit() error {
	if err := t.db.Commit().Error; err != nil {
		return fmt.Errorf("storage error committing: %w", err)
	}
	return nil
}

// Rollback discards every write of the transaction.
func (t *Tx) Rollback() error {
	if err := t.db.Rollback().Error; err != nil {
		return fmt.Errorf("storage error rolling back: %w", err)
	}
	return nil
}

// GetOrCreateUser returns the user with the given username, creating it if
// absent. The username is normalised first, so differently cased spellings
// resolve to the same user. created reports whether a row was inserted.
func (s *Store) GetOrCreateUser(ctx context.Context, username string) (user model.User, created bool, err error) {
	username = model.NormalizeUsername(username)
	db := s.db.WithContext(ctx)

	err = db.Where("username = ?", username).First(&user).Error
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, false, fmt.Errorf("storage error loading user %q: %w", username, err)
	}

	user = model.User{Username: username}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		return model.User{}, false, fmt.Errorf("storage error creating user %q: %w", username, err)
	}
	s.logger.Debug("user created", slog.String("username", username))
	return user, true, nil
}

// Users returns the users whose username contains fragment, ordered by username.
func (s *Store) Users(ctx context.Context, fragment string) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Where("username LIKE ? ESCAPE '\\'", containsPattern(model.NormalizeUsername(fragment))).
		Order("username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("storage error searching users: %w", err)
	}
	return users, nil
}

// SaveEntry inserts the entry on its first save, assigning it an ID, and
// updates it afterwards.
func (s *Store) SaveEntry(ctx context.Context, e *model.Entry) error {
	db := s.db.WithContext(ctx).Omit(clause.Associations)
	if e.Persisted() {
		if err := db.Save(e).Error; err != nil {
			return fmt.Errorf("storage error updating entry %s: %w", e.ID, err)
		}
		return nil
	}

	e.ID = uuid.NewString()
	if err := db.Create(e).Error; err != nil {
		e.ID = ""
		return fmt.Errorf("storage error creating entry: %w", err)
	}
	return nil
}

// DeleteEntry permanently removes the entry with the given id.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Entry{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("storage error deleting entry %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	s.logger.Debug("entry deleted", slog.String("id", id))
	return nil
}

// Entry loads a single entry by id.
func (s *Store) Entry(ctx context.Context, id string) (model.Entry, error) {
	var e model.Entry
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if err != nil {
		return model.Entry{}, fmt.Errorf("storage error loading entry %s: %w", id, err)
	}
	return e, nil
}

// CountEntries returns the number of stored entries.
func (s *Store) CountEntries(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Entry{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("storage error counting entries: %w", err)
	}
	return n, nil
}

// Filter selects entries. Zero fields do not constrain the result.
type Filter struct {
	// On matches entries dated exactly on that day.
	On *time.Time
	// From and To bound the entry date, both inclusive.
	From *time.Time
	To   *time.Time
	// Username matches the owning user exactly.
	Username string
	// NotesContain matches entries whose notes contain the text, ignoring case.
	NotesContain string
	// Ascending orders by date ascending instead of the default descending.
	Ascending bool
}

// FindEntries returns the entries matching f, newest date first unless
// f.Ascending is set.
func (s *Store) FindEntries(ctx context.Context, f Filter) ([]model.Entry, error) {
	q := s.db.WithContext(ctx).Model(&model.Entry{})
	if f.On != nil {
		q = q.Where("date = ?", *f.On)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	if f.Username != "" {
		q = q.Where("username = ?", f.Username)
	}
	if f.NotesContain != "" {
		q = q.Where("LOWER(notes) LIKE ? ESCAPE '\\'", containsPattern(strings.ToLower(f.NotesContain)))
	}

	if f.Ascending {
		q = q.Order("date").Order("created_at")
	} else {
		q = q.Order("date DESC").Order("created_at DESC")
	}

	var entries []model.Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("storage error searching entries: %w", err)
	}
	return entries, nil
}

// Dates returns the distinct days that have at least one entry, ascending.
func (s *Store) Dates(ctx context.Context) ([]time.Time, error) {
	var rows []model.Entry
	if err := s.db.WithContext(ctx).Model(&model.Entry{}).Select("date").Order("date").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("storage error listing dates: %w", err)
	}
	var dates []time.Time
	for _, r := range rows {
		if n := len(dates); n > 0 && dates[n-1].Equal(r.Date) {
			continue
		}
		dates = append(dates, r.Date)
	}
	return dates, nil
}

// EntriesBetween loads all entries dated in [from, to] inclusive, oldest first.
func (s *Store) EntriesBetween(ctx context.Context, from, to time.Time) ([]model.Entry, error) {
	return s.FindEntries(ctx, Filter{From: &from, To: &to, Ascending: true})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere in a value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
