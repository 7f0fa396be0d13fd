package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"study-go/internal/config"
	"study-go/internal/database"
	"study-go/internal/database/sqlc"
	"study-go/internal/encryption"
	"study-go/internal/fs"
	"study-go/internal/mock"
	"study-go/internal/notify"
	"study-go/internal/study"
	"study-go/internal/vault"
)

// ErrNoVault is returned by snapshot commands when vault.type is "none".
var ErrNoVault = errors.New("no vault configured")

// ErrNotSaved is returned by Close when a change stayed in memory because
// the database write failed.
var ErrNotSaved = errors.New("changes were not saved")

// StudyApp is the application layer between the CLI and StudyService.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw strings and paths, and manages the DB lifecycle on Close.
type StudyApp struct {
	cfg       *config.Config
	store     *database.SQLiteStore
	encryptor study.Encryptor
	archiver  *study.Archiver // nil when no vault is configured
	picker    *fs.Picker
	service   *study.StudyService
	logger    study.Logger
	interval  time.Duration
	op        *Operation
	logFile   *os.File
}

// NewStudyApp creates a fully wired StudyApp from the given config.
// operation identifies the CLI command being run (e.g. "AddEvent").
// Reminders are printed to out. The caller must call Close when done.
func NewStudyApp(cfg *config.Config, operation string, out io.Writer) (*StudyApp, error) {
	interval, err := cfg.Notify.PollInterval()
	if err != nil {
		return nil, fmt.Errorf("notify interval: %w", err)
	}
	ocrDelay, convertDelay, err := cfg.Mock.Delays()
	if err != nil {
		return nil, fmt.Errorf("mock delays: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, opID, cfg.LogStderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	fail := func(err error, closers ...io.Closer) (*StudyApp, error) {
		for _, c := range closers {
			c.Close()
		}
		logFile.Close()
		return nil, err
	}

	store, err := database.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return fail(fmt.Errorf("creating database: %w", err))
	}
	if err := store.CheckMigrations(); err != nil {
		return fail(fmt.Errorf("database schema out of date: %w", err), store)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fail(fmt.Errorf("creating encryptor: %w", err), store)
	}

	v, err := vault.NewVaultFromConfig(cfg.Vault)
	if err != nil {
		return fail(fmt.Errorf("creating vault: %w", err), store)
	}

	var archiver *study.Archiver
	if v != nil {
		archiver = study.NewArchiver(v, enc, logger)

		localMax, err := store.MaxOperationID()
		if err != nil {
			return fail(fmt.Errorf("checking local database version: %w", err), store)
		}
		behind, remote, err := archiver.Behind(study.SnapshotName, localMax)
		if err != nil {
			return fail(fmt.Errorf("checking snapshot version: %w", err), store)
		}
		if behind {
			logger.Warn("local database is behind the archived snapshot", "local", localMax, "remote", remote)
		}
	}

	svc := study.NewStudyService(
		store,
		notify.NewConsoleNotifier(out),
		mock.NewProcessor(ocrDelay, convertDelay),
		logger,
		study.RealClock{},
		study.UUIDGenerator{},
	)

	return &StudyApp{
		cfg:       cfg,
		store:     store,
		encryptor: enc,
		archiver:  archiver,
		picker:    fs.NewPicker(fs.DefaultMaxSize),
		service:   svc,
		logger:    logger,
		interval:  interval,
		op:        NewOperation(operation, ""),
		logFile:   logFile,
	}, nil
}

// persistOperation saves the operation to the database, giving it an
// auto-increment ID. Only commands that change stored data call it.
func (a *StudyApp) persistOperation(params ...string) error {
	if a.op.Persisted() {
		return nil
	}
	if a.op.Parameters == "" {
		a.op.Parameters = strings.Join(params, " ")
	}
	id, err := a.store.CreateOperation(a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = id
	return nil
}

// record marks the operation failed when err is non-nil and returns err.
func (a *StudyApp) record(err error) error {
	if err != nil {
		a.op.Fail()
	}
	return err
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, study.ErrNotFound)
}

// AddEvent validates and stores a new event, then fires any due reminder.
func (a *StudyApp) AddEvent(draft study.EventDraft) (study.Event, error) {
	if err := a.persistOperation(draft.Title); err != nil {
		return study.Event{}, err
	}
	e, err := a.service.AddEvent(draft)
	if err != nil {
		return study.Event{}, a.record(err)
	}
	a.service.ScanNotifications()
	return e, nil
}

// UpdateEvent applies patch to the event with id.
func (a *StudyApp) UpdateEvent(id string, patch study.EventPatch) (study.Event, error) {
	if err := a.persistOperation(id); err != nil {
		return study.Event{}, err
	}
	e, found, err := a.service.UpdateEvent(id, patch)
	if err != nil {
		return study.Event{}, a.record(err)
	}
	if !found {
		return study.Event{}, a.record(notFound("event", id))
	}
	a.service.ScanNotifications()
	return e, nil
}

func (a *StudyApp) DeleteEvent(id string) error {
	if err := a.persistOperation(id); err != nil {
		return err
	}
	if !a.service.DeleteEvent(id) {
		return a.record(notFound("event", id))
	}
	return nil
}

// ListEvents returns events sorted by date, filtered by category
// ("" or "all" keeps every event).
func (a *StudyApp) ListEvents(category string) []study.Event {
	return a.service.EventsIn(study.Category(category))
}

func (a *StudyApp) EventsOn(day time.Time) []study.Event {
	return a.service.EventsOn(day)
}

func (a *StudyApp) NotificationSettings() study.NotificationSettings {
	return a.service.NotificationSettings()
}

// SaveNotificationSettings replaces the reminder configuration and scans
// once with the new settings.
func (a *StudyApp) SaveNotificationSettings(ns study.NotificationSettings) error {
	if err := a.persistOperation(fmt.Sprintf("enabled=%t", ns.Enabled), "lead="+string(ns.LeadTime)); err != nil {
		return err
	}
	if err := a.service.SaveNotificationSettings(ns); err != nil {
		return a.record(err)
	}
	a.service.ScanNotifications()
	return nil
}

// ScanNotifications fires due reminders once.
func (a *StudyApp) ScanNotifications() ([]study.Event, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	return a.service.ScanNotifications(), nil
}

// WatchNotifications scans every notify.interval until ctx is cancelled.
func (a *StudyApp) WatchNotifications(ctx context.Context) error {
	if err := a.persistOperation(a.interval.String()); err != nil {
		return err
	}
	return study.NewWatcher(a.service, a.interval, a.logger).Run(ctx)
}

// UploadFile reads the file at rawPath and stores it in folderID.
func (a *StudyApp) UploadFile(rawPath, folderID string) (study.File, error) {
	upload, err := a.picker.Pick(rawPath, folderID)
	if err != nil {
		return study.File{}, err
	}
	if err := a.persistOperation(rawPath); err != nil {
		return study.File{}, err
	}
	f, err := a.service.UploadFile(upload)
	return f, a.record(err)
}

func (a *StudyApp) DeleteFile(id string) error {
	if err := a.persistOperation(id); err != nil {
		return err
	}
	if !a.service.DeleteFile(id) {
		return a.record(notFound("file", id))
	}
	return nil
}

func (a *StudyApp) ToggleStar(id string) (study.File, error) {
	if err := a.persistOperation(id); err != nil {
		return study.File{}, err
	}
	f, ok := a.service.ToggleStar(id)
	if !ok {
		return study.File{}, a.record(notFound("file", id))
	}
	return f, nil
}

// DownloadFile writes the payload of file id to dest and returns the path
// written. An empty dest means the file's own name in the working directory;
// a directory dest receives the file under its own name.
func (a *StudyApp) DownloadFile(id, dest string, overwrite bool) (string, error) {
	f, payload, err := a.service.DownloadFile(id)
	if err != nil {
		return "", err
	}
	path := dest
	if path == "" {
		path = f.Name
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, f.Name)
	}
	if err := fs.Save(path, payload, overwrite); err != nil {
		return "", err
	}
	return path, nil
}

func (a *StudyApp) ListFiles(folderID, query string, kind study.FileKind) []study.File {
	return a.service.ListFiles(folderID, query, kind)
}

func (a *StudyApp) StarredFiles() []study.File {
	return a.service.StarredFiles()
}

func (a *StudyApp) CreateFolder(draft study.FolderDraft) (study.Folder, error) {
	if err := a.persistOperation(draft.Name); err != nil {
		return study.Folder{}, err
	}
	f, err := a.service.CreateFolder(draft)
	return f, a.record(err)
}

// DeleteFolder removes an empty folder.
func (a *StudyApp) DeleteFolder(id string) error {
	if err := a.persistOperation(id); err != nil {
		return err
	}
	found, err := a.service.DeleteFolder(id)
	if err != nil {
		return a.record(err)
	}
	if !found {
		return a.record(notFound("folder", id))
	}
	return nil
}

func (a *StudyApp) ListFolders(parentID string) []study.Folder {
	return a.service.ListFolders(parentID)
}

func (a *StudyApp) FolderPath(id string) ([]study.Folder, error) {
	return a.service.FolderPath(id)
}

func (a *StudyApp) AddGrade(draft study.GradeDraft) (study.Grade, error) {
	if err := a.persistOperation(draft.Subject); err != nil {
		return study.Grade{}, err
	}
	g, err := a.service.AddGrade(draft)
	return g, a.record(err)
}

func (a *StudyApp) DeleteGrade(id string) error {
	if err := a.persistOperation(id); err != nil {
		return err
	}
	if !a.service.DeleteGrade(id) {
		return a.record(notFound("grade", id))
	}
	return nil
}

func (a *StudyApp) ListGrades(subject string) []study.Grade {
	return a.service.ListGrades(subject)
}

func (a *StudyApp) SubjectSummaries() []study.SubjectSummary {
	return a.service.SubjectSummaries()
}

func (a *StudyApp) AddChecklist(draft study.ChecklistDraft) (study.Checklist, error) {
	if err := a.persistOperation(draft.Title); err != nil {
		return study.Checklist{}, err
	}
	c, err := a.service.AddChecklist(draft)
	return c, a.record(err)
}

func (a *StudyApp) DeleteChecklist(id string) error {
	if err := a.persistOperation(id); err != nil {
		return err
	}
	if !a.service.DeleteChecklist(id) {
		return a.record(notFound("checklist", id))
	}
	return nil
}

func (a *StudyApp) AddChecklistItem(listID, content string) (study.ChecklistItem, error) {
	if err := a.persistOperation(listID); err != nil {
		return study.ChecklistItem{}, err
	}
	item, found, err := a.service.AddChecklistItem(listID, content)
	if err != nil {
		return study.ChecklistItem{}, a.record(err)
	}
	if !found {
		return study.ChecklistItem{}, a.record(notFound("checklist", listID))
	}
	return item, nil
}

func (a *StudyApp) ToggleChecklistItem(listID, itemID string) (study.ChecklistItem, error) {
	if err := a.persistOperation(listID, itemID); err != nil {
		return study.ChecklistItem{}, err
	}
	item, ok := a.service.ToggleChecklistItem(listID, itemID)
	if !ok {
		return study.ChecklistItem{}, a.record(notFound("checklist item", listID+"/"+itemID))
	}
	return item, nil
}

func (a *StudyApp) RemoveChecklistItem(listID, itemID string) error {
	if err := a.persistOperation(listID, itemID); err != nil {
		return err
	}
	if !a.service.RemoveChecklistItem(listID, itemID) {
		return a.record(notFound("checklist item", listID+"/"+itemID))
	}
	return nil
}

func (a *StudyApp) ListChecklists(filter study.ChecklistFilter) []study.Checklist {
	return a.service.ListChecklists(filter)
}

func (a *StudyApp) FindChecklist(id string) (study.Checklist, error) {
	c, ok := a.service.FindChecklist(id)
	if !ok {
		return study.Checklist{}, notFound("checklist", id)
	}
	return c, nil
}

func (a *StudyApp) Theme() study.Theme {
	return a.service.Theme()
}

func (a *StudyApp) ToggleTheme() (study.Theme, error) {
	if err := a.persistOperation(); err != nil {
		return "", err
	}
	return a.service.ToggleTheme(), nil
}

// RecognizeText extracts the text of the image at rawPath. When save is set
// the text is also stored as a file in folderID and returned.
func (a *StudyApp) RecognizeText(ctx context.Context, rawPath string, save bool, folderID string) (string, *study.File, error) {
	image, err := a.picker.Read(rawPath)
	if err != nil {
		return "", nil, err
	}
	text, err := a.service.RecognizeText(ctx, image)
	if err != nil {
		return "", nil, err
	}
	if !save {
		return text, nil, nil
	}

	if err := a.persistOperation(rawPath); err != nil {
		return "", nil, err
	}
	f, err := a.service.SaveRecognizedText(text, folderID)
	if err != nil {
		return "", nil, a.record(err)
	}
	return text, &f, nil
}

// Convert runs the named conversion over the files at rawPaths and stores
// the result in folderID.
func (a *StudyApp) Convert(ctx context.Context, kind string, rawPaths []string, folderID string) (study.File, error) {
	k, err := study.ParseConversionKind(kind)
	if err != nil {
		return study.File{}, err
	}
	inputs, err := a.picker.ReadAll(rawPaths)
	if err != nil {
		return study.File{}, err
	}
	if err := a.persistOperation(append([]string{kind}, rawPaths...)...); err != nil {
		return study.File{}, err
	}
	f, err := a.service.Convert(ctx, k, inputs, folderID)
	return f, a.record(err)
}

// GetHistory returns the most recent operations, newest first.
func (a *StudyApp) GetHistory(limit int) ([]sqlc.Operation, error) {
	return a.store.ListOperations(limit)
}

// SetupEncryption generates the snapshot key pair, protecting the private
// key with passphrase.
func (a *StudyApp) SetupEncryption(passphrase string) error {
	if err := a.encryptor.Setup(passphrase); err != nil {
		return fmt.Errorf("setting up encryption: %w", err)
	}
	a.logger.Info("encryption configured", "type", a.cfg.Encryption.Type)
	return nil
}

// RestoreSnapshot decrypts the latest archived snapshot and writes it to
// dest. dest must not exist.
func (a *StudyApp) RestoreSnapshot(passphrase, dest string) error {
	if a.archiver == nil {
		return ErrNoVault
	}
	var plaintext bytes.Buffer
	if err := a.archiver.Restore(study.SnapshotName, passphrase, &plaintext); err != nil {
		return err
	}
	if err := fs.Save(dest, plaintext.Bytes(), false); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	a.logger.Info("snapshot restored", "dest", dest, "size", plaintext.Len())
	return nil
}

// Close finalizes the operation and closes all resources.
// For persisted operations: finishes the operation record, snapshots the DB
// and archives it in the vault with version = operation ID.
// For non-persisted operations: just closes the database.
func (a *StudyApp) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if !a.op.Persisted() {
		if err := a.store.Close(); err != nil {
			keep(fmt.Errorf("closing database: %w", err))
		}
		a.closeLog()
		return firstErr
	}

	if keys := a.service.UnsavedKeys(); len(keys) > 0 {
		a.logger.Error("changes were not saved", "keys", strings.Join(keys, ","))
		a.op.Fail()
		keep(fmt.Errorf("%w: %s", ErrNotSaved, strings.Join(keys, ", ")))
	}

	if err := a.store.FinishOperation(a.op.ID, a.op.Status); err != nil {
		keep(fmt.Errorf("finishing operation: %w", err))
	}

	var tmpPath string
	switch {
	case a.archiver == nil:
	case !a.encryptor.IsConfigured():
		a.logger.Warn("encryption keys not set up, snapshot skipped", "operation", a.op.ID)
	default:
		path, err := a.snapshot()
		keep(err)
		tmpPath = path
	}

	if err := a.store.Close(); err != nil {
		keep(fmt.Errorf("closing database: %w", err))
	}

	if tmpPath != "" {
		keep(a.archive(tmpPath, a.op.ID))
		os.Remove(tmpPath)
	}

	a.closeLog()
	return firstErr
}

// snapshot copies the database into a temp file and returns its path.
func (a *StudyApp) snapshot() (string, error) {
	tmp, err := os.CreateTemp("", "study-db-snapshot-*.db")
	if err != nil {
		return "", fmt.Errorf("creating temp file for db snapshot: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	// VACUUM INTO refuses to overwrite an existing file.
	os.Remove(path)

	if err := a.store.BackupTo(path); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("snapshotting database: %w", err)
	}
	return path, nil
}

func (a *StudyApp) archive(path string, version int64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening db snapshot: %w", err)
	}
	defer f.Close()

	if err := a.archiver.Archive(study.SnapshotName, version, f); err != nil {
		return fmt.Errorf("archiving db snapshot: %w", err)
	}
	return nil
}

func (a *StudyApp) closeLog() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}
