// Package alerts inspects freshly processed reports and emits notifications
// for administrators and user watch rules.
package alerts

import (
	"fmt"
	"strings"

	"intelwire/internal/core"
	"intelwire/internal/logger"
)

type alertStore interface {
	ListAdmins() ([]core.User, error)
	ListActiveAlertRules() ([]core.AlertRule, error)
	CreateNotification(n *core.Notification) error
}

// Dispatcher evaluates alerting policy against a report.
type Dispatcher struct {
	store alertStore
}

// NewDispatcher creates a dispatcher backed by the given store.
func NewDispatcher(store alertStore) *Dispatcher {
	return &Dispatcher{store: store}
}

// Dispatch runs both alerting paths for a newly created report. The two
// paths are independent and may both fire for the same report. Returns the
// number of notifications created.
func (d *Dispatcher) Dispatch(report *core.Report) (int, error) {
	count := 0

	n, err := d.dispatchSystem(report)
	if err != nil {
		return count, err
	}
	count += n

	n, err = d.dispatchUserRules(report)
	if err != nil {
		return count, err
	}
	count += n

	return count, nil
}

// dispatchSystem notifies every administrator when a report reaches
// TOP_SECRET classification.
func (d *Dispatcher) dispatchSystem(report *core.Report) (int, error) {
	if report.Classification != core.ClassTopSecret {
		return 0, nil
	}

	admins, err := d.store.ListAdmins()
	if err != nil {
		return 0, fmt.Errorf("failed to list administrators: %w", err)
	}

	title := displayTitle(report)
	count := 0
	for _, admin := range admins {
		notification := &core.Notification{
			UserID:   admin.ID,
			Title:    "⚠️ تهديد سيادي: " + title,
			Message:  fmt.Sprintf("تقرير جديد بتصنيف %s: %s", report.Classification, title),
			Level:    core.LevelCritical,
			ReportID: report.ID,
		}
		if err := d.store.CreateNotification(notification); err != nil {
			logger.Warn("failed to create admin notification", "user", admin.Username, "error", err)
			continue
		}
		count++
	}

	logger.Info("sovereign threat alert dispatched", "report_id", report.ID, "admins", count)
	return count, nil
}

// dispatchUserRules checks every active watch rule against the report. A
// rule with a region gate is skipped when the region appears in neither
// title nor content.
func (d *Dispatcher) dispatchUserRules(report *core.Report) (int, error) {
	rules, err := d.store.ListActiveAlertRules()
	if err != nil {
		return 0, fmt.Errorf("failed to list alert rules: %w", err)
	}

	haystack := strings.ToLower(report.Title + " " + report.Content)
	count := 0
	for _, rule := range rules {
		if !RuleMatches(rule, haystack) {
			continue
		}

		notification := &core.Notification{
			UserID:      rule.UserID,
			Title:       "تنبيه حرج: " + rule.Name,
			Message:     fmt.Sprintf("تطابق تقرير جديد مع قاعدة التنبيه الخاصة بك: %s", displayTitle(report)),
			Level:       core.LevelCritical,
			ReportID:    report.ID,
			AlertRuleID: rule.ID,
		}
		if err := d.store.CreateNotification(notification); err != nil {
			logger.Warn("failed to create rule notification", "rule", rule.Name, "error", err)
			continue
		}
		count++
	}

	return count, nil
}

// RuleMatches reports whether rule fires against the lowercased haystack.
func RuleMatches(rule core.AlertRule, haystack string) bool {
	if region := strings.ToLower(strings.TrimSpace(rule.Region)); region != "" {
		if !strings.Contains(haystack, region) {
			return false
		}
	}

	for _, kw := range strings.Split(rule.Keywords, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// displayTitle prefers the translated title when available.
func displayTitle(report *core.Report) string {
	if report.TranslatedTitle != "" {
		return report.TranslatedTitle
	}
	return report.Title
}
