package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"intelwire/internal/core"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// Store is the SQLite-backed persistence layer shared by every pipeline
// stage. It must tolerate concurrent writers; the UNIQUE constraint on
// reports.original_url is the conflict-prevention mechanism.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (and initializes if needed) the database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "intelwire.db")
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return s, nil
}

// initialize creates the necessary tables.
func (s *Store) initialize() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			url TEXT,
			source_type TEXT NOT NULL,
			reliability_score INTEGER NOT NULL DEFAULT 50,
			is_active INTEGER NOT NULL DEFAULT 1,
			last_fetched_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			source_id TEXT NOT NULL REFERENCES sources (id),
			title TEXT NOT NULL,
			content TEXT,
			translated_title TEXT NOT NULL DEFAULT '',
			translated_content TEXT NOT NULL DEFAULT '',
			original_url TEXT UNIQUE,
			published_at DATETIME,
			created_at DATETIME NOT NULL,
			classification TEXT NOT NULL DEFAULT 'UNCLASSIFIED',
			topic TEXT NOT NULL DEFAULT '',
			severity TEXT NOT NULL DEFAULT 'LOW',
			credibility_score INTEGER NOT NULL DEFAULT 0,
			processing_status TEXT NOT NULL DEFAULT 'PENDING'
		);`,
		`CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			entity_type TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS report_entities (
			report_id TEXT NOT NULL REFERENCES reports (id),
			entity_id TEXT NOT NULL REFERENCES entities (id),
			PRIMARY KEY (report_id, entity_id)
		);`,
		`CREATE TABLE IF NOT EXISTS related_reports (
			report_id TEXT NOT NULL REFERENCES reports (id),
			related_id TEXT NOT NULL REFERENCES reports (id),
			PRIMARY KEY (report_id, related_id)
		);`,
		`CREATE TABLE IF NOT EXISTS entity_patterns (
			pattern TEXT PRIMARY KEY,
			entity_type TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS classification_rules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			keywords TEXT NOT NULL,
			required_keywords TEXT NOT NULL DEFAULT '',
			classification TEXT NOT NULL,
			severity TEXT NOT NULL,
			topic TEXT NOT NULL,
			weight INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS sovereign_terms (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			english_term TEXT NOT NULL UNIQUE,
			arabic_translation TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			is_regex INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS ignored_sources (
			keyword TEXT PRIMARY KEY,
			is_active INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS alert_rules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			keywords TEXT NOT NULL,
			region TEXT NOT NULL DEFAULT '',
			severity_level TEXT NOT NULL DEFAULT 'CRITICAL',
			is_active INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			level TEXT NOT NULL,
			is_read INTEGER NOT NULL DEFAULT 0,
			report_id TEXT,
			alert_rule_id INTEGER,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			is_admin INTEGER NOT NULL DEFAULT 0
		);`,
	}

	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY
// constraint failure. Duplicate reports surface through this when two
// writers race on the same original_url.
func IsUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// --- Sources ---

// CreateSource inserts a new source.
func (s *Store) CreateSource(src *core.Source) error {
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO sources (id, name, url, source_type, reliability_score, is_active, last_fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		src.ID, src.Name, src.URL, string(src.Type), src.ReliabilityScore, src.IsActive, nullTime(src.LastFetchedAt))
	return err
}

// GetOrCreateSourceByName returns the source with the given name, creating
// it from the template when absent.
func (s *Store) GetOrCreateSourceByName(name string, template core.Source) (*core.Source, error) {
	row := s.db.QueryRow(`
		SELECT id, name, url, source_type, reliability_score, is_active, last_fetched_at
		FROM sources WHERE name = ?`, name)
	src, err := scanSource(row)
	if err == nil {
		return src, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	template.Name = name
	if err := s.CreateSource(&template); err != nil {
		return nil, err
	}
	return &template, nil
}

// ListActiveSources returns the active sources of the given type, or of
// any type when sourceType is empty.
func (s *Store) ListActiveSources(sourceType core.SourceType) ([]core.Source, error) {
	query := `
		SELECT id, name, url, source_type, reliability_score, is_active, last_fetched_at
		FROM sources WHERE is_active = 1`
	args := []any{}
	if sourceType != "" {
		query += ` AND source_type = ?`
		args = append(args, string(sourceType))
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []core.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, *src)
	}
	return sources, rows.Err()
}

// UpdateSourceLastFetched stamps a source's last successful fetch time.
func (s *Store) UpdateSourceLastFetched(sourceID string, at time.Time) error {
	_, err := s.db.Exec(`UPDATE sources SET last_fetched_at = ? WHERE id = ?`, at, sourceID)
	return err
}

// GetSource returns a source by ID.
func (s *Store) GetSource(id string) (*core.Source, error) {
	row := s.db.QueryRow(`
		SELECT id, name, url, source_type, reliability_score, is_active, last_fetched_at
		FROM sources WHERE id = ?`, id)
	src, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("source %s not found", id)
	}
	return src, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSource(row rowScanner) (*core.Source, error) {
	var src core.Source
	var srcType string
	var lastFetched sql.NullTime
	err := row.Scan(&src.ID, &src.Name, &src.URL, &srcType, &src.ReliabilityScore, &src.IsActive, &lastFetched)
	if err != nil {
		return nil, err
	}
	src.Type = core.SourceType(srcType)
	if lastFetched.Valid {
		src.LastFetchedAt = lastFetched.Time
	}
	return &src, nil
}

// --- Reports ---

// CreateReport inserts a new report. A duplicate original_url surfaces as
// an error satisfying IsUniqueViolation.
func (s *Store) CreateReport(r *core.Report) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Classification == "" {
		r.Classification = core.ClassUnclassified
	}
	if r.Severity == "" {
		r.Severity = core.SeverityLow
	}
	if r.ProcessingStatus == "" {
		r.ProcessingStatus = core.StatusPending
	}
	_, err := s.db.Exec(`
		INSERT INTO reports
		(id, source_id, title, content, translated_title, translated_content, original_url,
		 published_at, created_at, classification, topic, severity, credibility_score, processing_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SourceID, r.Title, r.Content, r.TranslatedTitle, r.TranslatedContent,
		nullString(r.OriginalURL), nullTime(r.PublishedAt), r.CreatedAt,
		string(r.Classification), r.Topic, string(r.Severity), r.CredibilityScore, string(r.ProcessingStatus))
	return err
}

// ReportExistsByURL reports whether a report with this original URL exists.
func (s *Store) ReportExistsByURL(url string) (bool, error) {
	if url == "" {
		return false, nil
	}
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM reports WHERE original_url = ?`, url).Scan(&n)
	return n > 0, err
}

// GetReport returns a report by ID.
func (s *Store) GetReport(id string) (*core.Report, error) {
	row := s.db.QueryRow(reportSelect+` WHERE id = ?`, id)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s not found", id)
	}
	return r, err
}

const reportSelect = `
	SELECT id, source_id, title, content, translated_title, translated_content, original_url,
	       published_at, created_at, classification, topic, severity, credibility_score, processing_status
	FROM reports`

func scanReport(row rowScanner) (*core.Report, error) {
	var r core.Report
	var url sql.NullString
	var published sql.NullTime
	var classification, severity, status string
	err := row.Scan(&r.ID, &r.SourceID, &r.Title, &r.Content, &r.TranslatedTitle, &r.TranslatedContent,
		&url, &published, &r.CreatedAt, &classification, &r.Topic, &severity, &r.CredibilityScore, &status)
	if err != nil {
		return nil, err
	}
	r.OriginalURL = url.String
	if published.Valid {
		r.PublishedAt = published.Time
	}
	r.Classification = core.Classification(classification)
	r.Severity = core.Severity(severity)
	r.ProcessingStatus = core.ProcessingStatus(status)
	return &r, nil
}

// UpdateReportTranslation writes only the derived translation fields.
// Keeping this separate from CreateReport is what lets the orchestrator
// distinguish a translation-completion write from a fresh-record write.
func (s *Store) UpdateReportTranslation(r *core.Report) error {
	_, err := s.db.Exec(`
		UPDATE reports SET translated_title = ?, translated_content = ?, processing_status = ?
		WHERE id = ?`,
		r.TranslatedTitle, r.TranslatedContent, string(r.ProcessingStatus), r.ID)
	return err
}

// UpdateReportAnalysis writes the classification outcome and credibility.
func (s *Store) UpdateReportAnalysis(r *core.Report) error {
	_, err := s.db.Exec(`
		UPDATE reports SET classification = ?, topic = ?, severity = ?, credibility_score = ?
		WHERE id = ?`,
		string(r.Classification), r.Topic, string(r.Severity), r.CredibilityScore, r.ID)
	return err
}

// UpdateReportCredibility overwrites only the credibility score.
func (s *Store) UpdateReportCredibility(reportID string, score int) error {
	_, err := s.db.Exec(`UPDATE reports SET credibility_score = ? WHERE id = ?`, score, reportID)
	return err
}

// GetRecentReports returns up to limit reports ordered by publish time
// descending (creation time as tiebreak), excluding excludeID.
func (s *Store) GetRecentReports(excludeID string, limit int) ([]core.Report, error) {
	rows, err := s.db.Query(reportSelect+`
		WHERE id != ?
		ORDER BY published_at DESC, created_at DESC
		LIMIT ?`, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent reports: %w", err)
	}
	defer rows.Close()

	var reports []core.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

// --- Related reports (symmetric edge set) ---

// LinkReports records that two reports are related. Both directions are
// written in one transaction so the symmetry invariant holds even with
// concurrent writers.
func (s *Store) LinkReports(reportID, relatedID string) error {
	if reportID == relatedID {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, pair := range [][2]string{{reportID, relatedID}, {relatedID, reportID}} {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO related_reports (report_id, related_id) VALUES (?, ?)`,
			pair[0], pair[1]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to link reports: %w", err)
		}
	}
	return tx.Commit()
}

// RelatedReports returns the reports linked to reportID.
func (s *Store) RelatedReports(reportID string) ([]core.Report, error) {
	rows, err := s.db.Query(reportSelect+`
		WHERE id IN (SELECT related_id FROM related_reports WHERE report_id = ?)`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query related reports: %w", err)
	}
	defer rows.Close()

	var reports []core.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

// --- Entities ---

// GetOrCreateEntity returns the entity with this name, creating it with
// the given type when absent. Entities are shared across reports.
func (s *Store) GetOrCreateEntity(name string, entityType core.EntityType) (*core.Entity, error) {
	var e core.Entity
	var et string
	err := s.db.QueryRow(`SELECT id, name, entity_type FROM entities WHERE name = ?`, name).
		Scan(&e.ID, &e.Name, &et)
	if err == nil {
		e.Type = core.EntityType(et)
		return &e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	e = core.Entity{ID: uuid.NewString(), Name: name, Type: entityType}
	_, err = s.db.Exec(`INSERT INTO entities (id, name, entity_type) VALUES (?, ?, ?)`,
		e.ID, e.Name, string(e.Type))
	if IsUniqueViolation(err) {
		// Lost a race with another writer; read back the winner.
		return s.GetOrCreateEntity(name, entityType)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// AttachEntity associates an entity with a report, deduplicated by the
// join-table primary key.
func (s *Store) AttachEntity(reportID, entityID string) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO report_entities (report_id, entity_id) VALUES (?, ?)`,
		reportID, entityID)
	return err
}

// EntitiesForReport returns the entities associated with a report.
func (s *Store) EntitiesForReport(reportID string) ([]core.Entity, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.name, e.entity_type FROM entities e
		JOIN report_entities re ON re.entity_id = e.id
		WHERE re.report_id = ?`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var entities []core.Entity
	for rows.Next() {
		var e core.Entity
		var et string
		if err := rows.Scan(&e.ID, &e.Name, &et); err != nil {
			return nil, err
		}
		e.Type = core.EntityType(et)
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// ShareEntity reports whether two reports have at least one entity in common.
func (s *Store) ShareEntity(reportID, otherID string) (bool, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM report_entities a
		JOIN report_entities b ON a.entity_id = b.entity_id
		WHERE a.report_id = ? AND b.report_id = ?`, reportID, otherID).Scan(&n)
	return n > 0, err
}

// --- Configuration tables ---

// ListEntityPatterns returns all entity extraction patterns.
func (s *Store) ListEntityPatterns() ([]core.EntityPattern, error) {
	rows, err := s.db.Query(`SELECT pattern, entity_type FROM entity_patterns`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entity patterns: %w", err)
	}
	defer rows.Close()

	var patterns []core.EntityPattern
	for rows.Next() {
		var p core.EntityPattern
		var et string
		if err := rows.Scan(&p.Pattern, &et); err != nil {
			return nil, err
		}
		p.EntityType = core.EntityType(et)
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// UpsertEntityPattern inserts a pattern, keeping the existing row on conflict.
func (s *Store) UpsertEntityPattern(p core.EntityPattern) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO entity_patterns (pattern, entity_type) VALUES (?, ?)`,
		p.Pattern, string(p.EntityType))
	return err
}

// ListActiveRules returns the active classification rules ordered by
// weight descending, with rule id ascending as the deterministic tiebreak.
func (s *Store) ListActiveRules() ([]core.ClassificationRule, error) {
	rows, err := s.db.Query(`
		SELECT id, name, keywords, required_keywords, classification, severity, topic, weight, is_active
		FROM classification_rules
		WHERE is_active = 1
		ORDER BY weight DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query classification rules: %w", err)
	}
	defer rows.Close()

	var rules []core.ClassificationRule
	for rows.Next() {
		var r core.ClassificationRule
		var classification, severity string
		if err := rows.Scan(&r.ID, &r.Name, &r.Keywords, &r.RequiredKeywords,
			&classification, &severity, &r.Topic, &r.Weight, &r.IsActive); err != nil {
			return nil, err
		}
		r.Classification = core.Classification(classification)
		r.Severity = core.Severity(severity)
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// UpsertRule inserts or updates a classification rule keyed by name.
func (s *Store) UpsertRule(r core.ClassificationRule) error {
	_, err := s.db.Exec(`
		INSERT INTO classification_rules
		(name, keywords, required_keywords, classification, severity, topic, weight, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			keywords = excluded.keywords,
			required_keywords = excluded.required_keywords,
			classification = excluded.classification,
			severity = excluded.severity,
			topic = excluded.topic,
			weight = excluded.weight,
			is_active = excluded.is_active`,
		r.Name, r.Keywords, r.RequiredKeywords, string(r.Classification),
		string(r.Severity), r.Topic, r.Weight, r.IsActive)
	return err
}

// ListSovereignTerms returns all dictionary terms.
func (s *Store) ListSovereignTerms() ([]core.SovereignTerm, error) {
	rows, err := s.db.Query(`
		SELECT id, english_term, arabic_translation, category, is_regex FROM sovereign_terms`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sovereign terms: %w", err)
	}
	defer rows.Close()

	var terms []core.SovereignTerm
	for rows.Next() {
		var t core.SovereignTerm
		if err := rows.Scan(&t.ID, &t.EnglishTerm, &t.ArabicTranslation, &t.Category, &t.IsRegex); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// UpsertSovereignTerm inserts a term, keeping the existing row on conflict.
func (s *Store) UpsertSovereignTerm(t core.SovereignTerm) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO sovereign_terms (english_term, arabic_translation, category, is_regex)
		VALUES (?, ?, ?, ?)`,
		t.EnglishTerm, t.ArabicTranslation, t.Category, t.IsRegex)
	return err
}

// ListActiveIgnoredKeywords returns the active denylist keywords.
func (s *Store) ListActiveIgnoredKeywords() ([]string, error) {
	rows, err := s.db.Query(`SELECT keyword FROM ignored_sources WHERE is_active = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ignored sources: %w", err)
	}
	defer rows.Close()

	var keywords []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keywords = append(keywords, k)
	}
	return keywords, rows.Err()
}

// UpsertIgnoredKeyword inserts a denylist keyword, keeping the existing
// row on conflict.
func (s *Store) UpsertIgnoredKeyword(keyword string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO ignored_sources (keyword, is_active) VALUES (?, 1)`, keyword)
	return err
}

// --- Alert rules, notifications, users ---

// ListActiveAlertRules returns all active user-defined alert rules.
func (s *Store) ListActiveAlertRules() ([]core.AlertRule, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, keywords, region, severity_level, is_active
		FROM alert_rules WHERE is_active = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert rules: %w", err)
	}
	defer rows.Close()

	var rules []core.AlertRule
	for rows.Next() {
		var r core.AlertRule
		var severity string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Keywords, &r.Region, &severity, &r.IsActive); err != nil {
			return nil, err
		}
		r.SeverityLevel = core.Severity(severity)
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// CreateAlertRule inserts a user-defined alert rule.
func (s *Store) CreateAlertRule(r *core.AlertRule) error {
	res, err := s.db.Exec(`
		INSERT INTO alert_rules (user_id, name, keywords, region, severity_level, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.UserID, r.Name, r.Keywords, r.Region, string(r.SeverityLevel), r.IsActive)
	if err != nil {
		return err
	}
	r.ID, err = res.LastInsertId()
	return err
}

// CreateNotification inserts a notification.
func (s *Store) CreateNotification(n *core.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO notifications (id, user_id, title, message, level, is_read, report_id, alert_rule_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Message, string(n.Level), n.IsRead,
		nullString(n.ReportID), nullInt64(n.AlertRuleID), n.CreatedAt)
	return err
}

// NotificationsForUser returns the notifications for a user, newest first.
func (s *Store) NotificationsForUser(userID string) ([]core.Notification, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, message, level, is_read, report_id, alert_rule_id, created_at
		FROM notifications WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []core.Notification
	for rows.Next() {
		var n core.Notification
		var level string
		var reportID sql.NullString
		var ruleID sql.NullInt64
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &level, &n.IsRead,
			&reportID, &ruleID, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Level = core.NotificationLevel(level)
		n.ReportID = reportID.String
		n.AlertRuleID = ruleID.Int64
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// ListAdmins returns all administrator accounts.
func (s *Store) ListAdmins() ([]core.User, error) {
	rows, err := s.db.Query(`SELECT id, username, is_admin FROM users WHERE is_admin = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Username, &u.IsAdmin); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetOrCreateUser returns the user with this username, creating it when absent.
func (s *Store) GetOrCreateUser(username string, isAdmin bool) (*core.User, error) {
	var u core.User
	err := s.db.QueryRow(`SELECT id, username, is_admin FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.IsAdmin)
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	u = core.User{ID: uuid.NewString(), Username: username, IsAdmin: isAdmin}
	if _, err := s.db.Exec(`INSERT INTO users (id, username, is_admin) VALUES (?, ?, ?)`,
		u.ID, u.Username, u.IsAdmin); err != nil {
		return nil, err
	}
	return &u, nil
}

// Stats summarizes the pipeline's persisted output.
type Stats struct {
	SourceCount       int
	ReportCount       int
	EntityCount       int
	NotificationCount int
}

// GetStats returns row counts for the main tables.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	queries := map[string]*int{
		`SELECT COUNT(*) FROM sources`:       &stats.SourceCount,
		`SELECT COUNT(*) FROM reports`:       &stats.ReportCount,
		`SELECT COUNT(*) FROM entities`:      &stats.EntityCount,
		`SELECT COUNT(*) FROM notifications`: &stats.NotificationCount,
	}
	for query, target := range queries {
		if err := s.db.QueryRow(query).Scan(target); err != nil {
			return nil, fmt.Errorf("failed to get count: %w", err)
		}
	}
	return stats, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullInt64(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
