package core

import (
	"testing"
	"time"
)

func TestSourceCreation(t *testing.T) {
	now := time.Now()
	source := Source{
		ID:               "source-1",
		Name:             "Reuters World",
		URL:              "https://example.com/rss",
		Type:             SourceTypeFeed,
		ReliabilityScore: 98,
		IsActive:         true,
		LastFetchedAt:    now,
	}

	if source.ID != "source-1" {
		t.Errorf("Expected ID to be 'source-1', got %s", source.ID)
	}
	if source.Type != SourceTypeFeed {
		t.Errorf("Expected Type to be %s, got %s", SourceTypeFeed, source.Type)
	}
	if source.ReliabilityScore != 98 {
		t.Errorf("Expected ReliabilityScore to be 98, got %d", source.ReliabilityScore)
	}
	if !source.IsActive {
		t.Errorf("Expected IsActive to be true, got %v", source.IsActive)
	}
}

func TestReportCreation(t *testing.T) {
	now := time.Now()
	report := Report{
		ID:                "report-1",
		SourceID:          "source-1",
		Title:             "Missile strike reported",
		Content:           "A ballistic missile was intercepted over the capital.",
		TranslatedTitle:   "تم الإبلاغ عن ضربة صاروخية",
		TranslatedContent: "تم اعتراض صاروخ باليستي فوق العاصمة.",
		OriginalURL:       "https://example.com/article",
		PublishedAt:       now,
		CreatedAt:         now,
		Classification:    ClassTopSecret,
		Topic:             "MISSILE_THREAT",
		Severity:          SeverityCritical,
		CredibilityScore:  100,
		ProcessingStatus:  StatusCompleted,
	}

	if report.ID != "report-1" {
		t.Errorf("Expected ID to be 'report-1', got %s", report.ID)
	}
	if report.Classification != ClassTopSecret {
		t.Errorf("Expected Classification to be %s, got %s", ClassTopSecret, report.Classification)
	}
	if report.Severity != SeverityCritical {
		t.Errorf("Expected Severity to be %s, got %s", SeverityCritical, report.Severity)
	}
	if report.CredibilityScore != 100 {
		t.Errorf("Expected CredibilityScore to be 100, got %d", report.CredibilityScore)
	}
	if report.ProcessingStatus != StatusCompleted {
		t.Errorf("Expected ProcessingStatus to be %s, got %s", StatusCompleted, report.ProcessingStatus)
	}
}

func TestClassificationRuleCreation(t *testing.T) {
	rule := ClassificationRule{
		ID:               1,
		Name:             "Ballistic / Drone Attack",
		Keywords:         "missile, drone, ballistic",
		RequiredKeywords: "launch, strike",
		Classification:   ClassTopSecret,
		Severity:         SeverityCritical,
		Topic:            "MISSILE_THREAT",
		Weight:           95,
		IsActive:         true,
	}

	if rule.Name != "Ballistic / Drone Attack" {
		t.Errorf("Expected Name to be 'Ballistic / Drone Attack', got %s", rule.Name)
	}
	if rule.Weight != 95 {
		t.Errorf("Expected Weight to be 95, got %d", rule.Weight)
	}
	if rule.Classification != ClassTopSecret {
		t.Errorf("Expected Classification to be %s, got %s", ClassTopSecret, rule.Classification)
	}
	if !rule.IsActive {
		t.Errorf("Expected IsActive to be true, got %v", rule.IsActive)
	}
}

func TestEntityCreation(t *testing.T) {
	entity := Entity{
		ID:   "entity-1",
		Name: "الرياض",
		Type: EntityLocation,
	}

	if entity.ID != "entity-1" {
		t.Errorf("Expected ID to be 'entity-1', got %s", entity.ID)
	}
	if entity.Type != EntityLocation {
		t.Errorf("Expected Type to be %s, got %s", EntityLocation, entity.Type)
	}
}

func TestSovereignTermCreation(t *testing.T) {
	term := SovereignTerm{
		ID:                1,
		EnglishTerm:       "ballistic missile",
		ArabicTranslation: "صاروخ باليستي",
		Category:          "military",
		IsRegex:           false,
	}

	if term.EnglishTerm != "ballistic missile" {
		t.Errorf("Expected EnglishTerm to be 'ballistic missile', got %s", term.EnglishTerm)
	}
	if term.Category != "military" {
		t.Errorf("Expected Category to be 'military', got %s", term.Category)
	}
	if term.IsRegex {
		t.Errorf("Expected IsRegex to be false, got %v", term.IsRegex)
	}
}

func TestAlertRuleCreation(t *testing.T) {
	rule := AlertRule{
		ID:            1,
		UserID:        "user-1",
		Name:          "Border incidents",
		Keywords:      "border, incursion",
		Region:        "yemen",
		SeverityLevel: SeverityHigh,
		IsActive:      true,
	}

	if rule.UserID != "user-1" {
		t.Errorf("Expected UserID to be 'user-1', got %s", rule.UserID)
	}
	if rule.Region != "yemen" {
		t.Errorf("Expected Region to be 'yemen', got %s", rule.Region)
	}
	if rule.SeverityLevel != SeverityHigh {
		t.Errorf("Expected SeverityLevel to be %s, got %s", SeverityHigh, rule.SeverityLevel)
	}
}

func TestNotificationCreation(t *testing.T) {
	now := time.Now()
	notification := Notification{
		ID:          "notif-1",
		UserID:      "user-1",
		Title:       "تنبيه حرج: Border incidents",
		Message:     "New report matched your alert rule",
		Level:       LevelCritical,
		IsRead:      false,
		ReportID:    "report-1",
		AlertRuleID: 1,
		CreatedAt:   now,
	}

	if notification.UserID != "user-1" {
		t.Errorf("Expected UserID to be 'user-1', got %s", notification.UserID)
	}
	if notification.Level != LevelCritical {
		t.Errorf("Expected Level to be %s, got %s", LevelCritical, notification.Level)
	}
	if notification.IsRead {
		t.Errorf("Expected IsRead to be false, got %v", notification.IsRead)
	}
	if notification.AlertRuleID != 1 {
		t.Errorf("Expected AlertRuleID to be 1, got %d", notification.AlertRuleID)
	}
}

func TestUserCreation(t *testing.T) {
	user := User{
		ID:       "user-1",
		Username: "analyst",
		IsAdmin:  true,
	}

	if user.Username != "analyst" {
		t.Errorf("Expected Username to be 'analyst', got %s", user.Username)
	}
	if !user.IsAdmin {
		t.Errorf("Expected IsAdmin to be true, got %v", user.IsAdmin)
	}
}
