package core

import "time"

// SourceType identifies how a source's content is obtained.
type SourceType string

const (
	SourceTypeFeed    SourceType = "feed"
	SourceTypeAPI     SourceType = "api"
	SourceTypeSocial  SourceType = "social"
	SourceTypeWebsite SourceType = "website"
	SourceTypeManual  SourceType = "manual"
	SourceTypeOther   SourceType = "other"
)

// Classification is the sensitivity label assigned to a report.
// Levels are ordered from least to most restricted.
type Classification string

const (
	ClassUnclassified Classification = "UNCLASSIFIED"
	ClassRestricted   Classification = "RESTRICTED"
	ClassConfidential Classification = "CONFIDENTIAL"
	ClassSecret       Classification = "SECRET"
	ClassTopSecret    Classification = "TOP_SECRET"
)

// Severity grades how urgent a classified report is.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// ProcessingStatus tracks whether derived fields (translation) were produced.
type ProcessingStatus string

const (
	StatusPending   ProcessingStatus = "PENDING"
	StatusCompleted ProcessingStatus = "COMPLETED"
	StatusFailed    ProcessingStatus = "FAILED"
)

// EntityType categorizes extracted entities.
type EntityType string

const (
	EntityPerson       EntityType = "PERSON"
	EntityOrganization EntityType = "ORGANIZATION"
	EntityLocation     EntityType = "LOCATION"
	EntityEvent        EntityType = "EVENT"
)

// NotificationLevel is the urgency of a notification.
type NotificationLevel string

const (
	LevelInfo     NotificationLevel = "INFO"
	LevelWarning  NotificationLevel = "WARNING"
	LevelCritical NotificationLevel = "CRITICAL"
)

// Source represents a monitored open-source outlet.
type Source struct {
	ID               string     `json:"id"`                // Unique identifier for the source
	Name             string     `json:"name"`              // Human-readable name
	URL              string     `json:"url"`               // Feed or site URL
	Type             SourceType `json:"type"`              // How content is obtained
	ReliabilityScore int        `json:"reliability_score"` // Baseline reliability, 0-100
	IsActive         bool       `json:"is_active"`         // Whether the source is polled
	LastFetchedAt    time.Time  `json:"last_fetched_at"`   // Last successful fetch (zero if never)
}

// Report is the unit of intelligence produced by the pipeline.
type Report struct {
	ID                string           `json:"id"`                 // Unique identifier
	SourceID          string           `json:"source_id"`          // Owning source
	Title             string           `json:"title"`              // Title in source language
	Content           string           `json:"content"`            // Body in source language
	TranslatedTitle   string           `json:"translated_title"`   // Arabic title (derived)
	TranslatedContent string           `json:"translated_content"` // Arabic body (derived)
	OriginalURL       string           `json:"original_url"`       // Natural dedup key, unique when present
	PublishedAt       time.Time        `json:"published_at"`       // Publication time reported by the source
	CreatedAt         time.Time        `json:"created_at"`         // When the report was ingested
	Classification    Classification   `json:"classification"`     // Sensitivity label
	Topic             string           `json:"topic"`              // Topic assigned by the classifier
	Severity          Severity         `json:"severity"`           // Urgency assigned by the classifier
	CredibilityScore  int              `json:"credibility_score"`  // 0-100, recomputed by correlation
	ProcessingStatus  ProcessingStatus `json:"processing_status"`  // Translation outcome
}

// Entity is a named person, organization, location or event shared
// across reports.
type Entity struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type EntityType `json:"type"`
}

// EntityPattern is a configuration row driving the entity extractor.
type EntityPattern struct {
	Pattern    string     `json:"pattern"`     // Literal text matched against title+content
	EntityType EntityType `json:"entity_type"` // Type assigned to the created entity
}

// ClassificationRule is one weighted rule in the classification engine.
// Keywords and RequiredKeywords are comma-separated lists; the keyword set
// is an OR gate, the required set an AND gate (any one required keyword
// satisfies it, an empty set means no gate).
type ClassificationRule struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Keywords         string         `json:"keywords"`
	RequiredKeywords string         `json:"required_keywords"`
	Classification   Classification `json:"classification"`
	Severity         Severity       `json:"severity"`
	Topic            string         `json:"topic"`
	Weight           int            `json:"weight"` // Higher weight evaluated first
	IsActive         bool           `json:"is_active"`
}

// SovereignTerm is one entry of the offline translation dictionary.
type SovereignTerm struct {
	ID                int64  `json:"id"`
	EnglishTerm       string `json:"english_term"`       // Pattern; full regex when IsRegex is set
	ArabicTranslation string `json:"arabic_translation"` // Replacement text
	Category          string `json:"category"`           // e.g. "military", "political", "geo"
	IsRegex           bool   `json:"is_regex"`
}

// IgnoredSource is a denylist keyword applied to source identities and
// individual feed entries.
type IgnoredSource struct {
	Keyword  string `json:"keyword"`
	IsActive bool   `json:"is_active"`
}

// AlertRule is a user-defined watch rule for critical notifications.
type AlertRule struct {
	ID            int64    `json:"id"`
	UserID        string   `json:"user_id"`        // Owning user
	Name          string   `json:"name"`           // Rule label shown in notifications
	Keywords      string   `json:"keywords"`       // Comma-separated OR set
	Region        string   `json:"region"`         // Optional gate; empty means no gate
	SeverityLevel Severity `json:"severity_level"` // Informational; keyword match is the trigger
	IsActive      bool     `json:"is_active"`
}

// Notification is a message produced by the alert dispatcher for a user.
type Notification struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	Level       NotificationLevel `json:"level"`
	IsRead      bool              `json:"is_read"`
	ReportID    string            `json:"report_id"`     // Optional backlink
	AlertRuleID int64             `json:"alert_rule_id"` // Optional backlink, 0 for system alerts
	CreatedAt   time.Time         `json:"created_at"`
}

// User is the minimal collaborator surface needed for alert fan-out.
// Account management itself lives outside this system.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
