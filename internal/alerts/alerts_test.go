package alerts

import (
	"strings"
	"testing"

	"intelwire/internal/core"
)

type fakeAlertStore struct {
	admins        []core.User
	rules         []core.AlertRule
	notifications []core.Notification
}

func (f *fakeAlertStore) ListAdmins() ([]core.User, error) {
	return f.admins, nil
}

func (f *fakeAlertStore) ListActiveAlertRules() ([]core.AlertRule, error) {
	return f.rules, nil
}

func (f *fakeAlertStore) CreateNotification(n *core.Notification) error {
	f.notifications = append(f.notifications, *n)
	return nil
}

func TestDispatchTopSecretNotifiesAllAdmins(t *testing.T) {
	store := &fakeAlertStore{admins: []core.User{
		{ID: "u1", Username: "admin1", IsAdmin: true},
		{ID: "u2", Username: "admin2", IsAdmin: true},
	}}
	d := NewDispatcher(store)

	report := &core.Report{
		ID:              "r1",
		Title:           "explosion near palace",
		TranslatedTitle: "انفجار قرب القصر",
		Classification:  core.ClassTopSecret,
	}
	count, err := d.Dispatch(report)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 notifications, got %d", count)
	}
	for _, n := range store.notifications {
		if n.Level != core.LevelCritical {
			t.Errorf("expected critical level, got %s", n.Level)
		}
		if !strings.HasPrefix(n.Title, "⚠️ تهديد سيادي:") {
			t.Errorf("unexpected title: %q", n.Title)
		}
		if !strings.Contains(n.Title, "انفجار قرب القصر") {
			t.Errorf("expected translated title used, got %q", n.Title)
		}
	}
}

func TestDispatchLowerClassificationSkipsAdmins(t *testing.T) {
	store := &fakeAlertStore{admins: []core.User{{ID: "u1", IsAdmin: true}}}
	d := NewDispatcher(store)

	count, err := d.Dispatch(&core.Report{ID: "r1", Classification: core.ClassSecret})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no notifications, got %d", count)
	}
}

func TestDispatchUserRuleKeywordMatch(t *testing.T) {
	store := &fakeAlertStore{rules: []core.AlertRule{
		{ID: 1, UserID: "u3", Name: "خليج مراقبة", Keywords: "naval,strait", IsActive: true},
	}}
	d := NewDispatcher(store)

	report := &core.Report{ID: "r2", Title: "Naval vessels enter strait", Content: "details"}
	count, err := d.Dispatch(report)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 notification, got %d", count)
	}
	n := store.notifications[0]
	if n.UserID != "u3" {
		t.Errorf("expected rule owner notified, got %s", n.UserID)
	}
	if n.AlertRuleID != 1 || n.ReportID != "r2" {
		t.Errorf("expected rule and report references, got rule=%d report=%s", n.AlertRuleID, n.ReportID)
	}
	if !strings.HasPrefix(n.Title, "تنبيه حرج:") {
		t.Errorf("unexpected title: %q", n.Title)
	}
}

func TestDispatchRegionGate(t *testing.T) {
	store := &fakeAlertStore{rules: []core.AlertRule{
		{ID: 1, UserID: "u1", Name: "gulf watch", Keywords: "missile", Region: "yemen", IsActive: true},
	}}
	d := NewDispatcher(store)

	count, err := d.Dispatch(&core.Report{ID: "r3", Title: "missile test in asia"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected region gate to skip rule, got %d notifications", count)
	}

	count, err = d.Dispatch(&core.Report{ID: "r4", Title: "missile strike", Content: "reports from Yemen border"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected rule to fire when region present, got %d", count)
	}
}

func TestDispatchBothPathsFire(t *testing.T) {
	store := &fakeAlertStore{
		admins: []core.User{{ID: "a1", IsAdmin: true}},
		rules: []core.AlertRule{
			{ID: 9, UserID: "u9", Name: "watch", Keywords: "attack", IsActive: true},
		},
	}
	d := NewDispatcher(store)

	report := &core.Report{ID: "r5", Title: "attack confirmed", Classification: core.ClassTopSecret}
	count, err := d.Dispatch(report)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected both paths to fire, got %d notifications", count)
	}
}
