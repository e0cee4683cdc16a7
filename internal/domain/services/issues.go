package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

// chapterPolicy selects which chapters an issue touches.
type chapterPolicy int

const (
	chaptersNone chapterPolicy = iota
	chaptersAll
	chaptersFirst
)

// firstChapterWindow is how many early chapters a localized change touches.
const firstChapterWindow = 5

// issueRule maps one changed field to exactly one issue shape. Fields absent
// from the table are narratively inert and produce no issue.
type issueRule struct {
	severity  entities.Severity
	issueType entities.IssueType
	chapters  chapterPolicy
	title     func(name string, c entities.ChangeRecord) string
	describe  func(name string, c entities.ChangeRecord) string
	suggest   func(name string, c entities.ChangeRecord) string
}

// issueRules is the fixed one-to-one rule table. Field paths are unique
// across entry types, so one flat table covers all six.
var issueRules = map[string]issueRule{
	"alive": {
		severity:  entities.SeverityCritical,
		issueType: entities.IssueContinuity,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			if isFalse(c.NewValue) {
				return fmt.Sprintf("%s is now deceased", name)
			}
			return fmt.Sprintf("%s is alive again", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			if isFalse(c.NewValue) {
				return fmt.Sprintf("%s has been marked as dead. Every scene where they act or speak after the death contradicts canon.", name)
			}
			return fmt.Sprintf("%s has been marked as alive again. Chapters written around their death no longer hold.", name)
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Decide where in the timeline this happens and review every chapter featuring %s on either side of it.", name)
		},
	},
	"currentLocation": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueContinuity,
		chapters:  chaptersFirst,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s changed location", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s moved from %s to %s. Early scenes that place them in the old location may now read as mistakes.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Check the opening chapters for scenes that anchor %s to %s.", name, formatValue(c.OldValue))
		},
	},
	"role": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueCharacterInconsistency,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's role changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's narrative role changed from %s to %s. Their existing scenes were written for the old role.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Reread %s's scenes and confirm their behaviour supports the new role.", name)
		},
	},
	"personality.traits": {
		severity:  entities.SeverityInfo,
		issueType: entities.IssueCharacterInconsistency,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's personality shifted", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's traits changed from %s to %s. Dialogue and decisions written under the old traits may feel out of character.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Skim %s's dialogue for moments that depend on the removed traits.", name)
		},
	},
	"personality.fears": {
		severity:  entities.SeverityInfo,
		issueType: entities.IssueCharacterInconsistency,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's fears changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's fears changed from %s to %s. Scenes built on the old fears may lose their tension.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Look for scenes where %s's fear drives the action.", name)
		},
	},
	"personality.desires": {
		severity:  entities.SeverityInfo,
		issueType: entities.IssueCharacterInconsistency,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's desires changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's desires changed from %s to %s. Their motivation in existing chapters may no longer track.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Confirm %s's choices still follow from what they want.", name)
		},
	},
	"speechPattern": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueCharacterInconsistency,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's voice changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's speech pattern changed from %s to %s. All existing dialogue was written in the old voice.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Revise %s's dialogue to match the new voice, or keep the old one.", name)
		},
	},
	"knowledgeState": {
		severity:  entities.SeverityError,
		issueType: entities.IssuePlotHole,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("What %s knows has changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's knowledge changed from %s to %s. Scenes where they act on knowledge they no longer have, or fail to act on knowledge they now have, become plot holes.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Trace when %s learns each fact and verify no scene jumps ahead of it.", name)
		},
	},
	"relationships": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueCharacterInconsistency,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's relationships changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's relationships changed from %s to %s. Interactions written under the old relationships may read wrong.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Review scenes %s shares with the affected characters.", name)
		},
	},
	"name": {
		severity:  entities.SeverityInfo,
		issueType: entities.IssueContinuity,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Renamed to %s", formatValue(c.NewValue))
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("The entry was renamed from %s to %s. Every mention in the manuscript still uses the old name.", formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Search the manuscript for %s and update each mention.", formatValue(c.OldValue))
		},
	},
	"accessRules": {
		severity:  entities.SeverityError,
		issueType: entities.IssueLogic,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Access rules for %s changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Who can enter %s changed from %s to %s. Scenes where characters enter under the old rules may now be impossible.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Verify every entrance to %s is still permitted under the new rules.", name)
		},
	},
	"connectedLocations": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueContinuity,
		chapters:  chaptersFirst,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Geography around %s changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Connections of %s changed from %s to %s. Travel described early in the story may no longer be possible.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Check journeys to and from %s in the opening chapters.", name)
		},
	},
	"rules": {
		severity:  entities.SeverityError,
		issueType: entities.IssueLogic,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("How %s works changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("The rules of %s changed from %s to %s. Every use of the system in the manuscript followed the old rules.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Audit each use of %s against the new rules.", name)
		},
	},
	"limitations": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueLogic,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Limits of %s changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("The limitations of %s changed from %s to %s. Feats that relied on the old limits may break, and obstacles may vanish.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Check scenes where %s was pushed to its limits.", name)
		},
	},
	"cost": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueLogic,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Cost of %s changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("The cost of using %s changed from %s to %s. Casual uses may now be implausible, or dramatic sacrifices trivial.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Reweigh each use of %s against the new cost.", name)
		},
	},
	"powers": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueLogic,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Powers of %s changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("The powers of %s changed from %s to %s. Scenes where it was used rely on the old powers.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Review every scene where %s is used.", name)
		},
	},
	"currentOwner": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueContinuity,
		chapters:  chaptersFirst,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s changed hands", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's owner changed from %s to %s. Early scenes may show it with the wrong person.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Check who carries %s in the opening chapters.", name)
		},
	},
	"lastKnownLocation": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueContinuity,
		chapters:  chaptersFirst,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s was moved", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s's last known location changed from %s to %s. Scenes that find it in the old place no longer work.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Update scenes that reference where %s rests.", name)
		},
	},
	"statement": {
		severity:  entities.SeverityError,
		issueType: entities.IssueLogic,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("World rule %s was rewritten", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("The rule changed from %s to %s. Everything in the world that obeyed the old rule needs rechecking.", formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("List the scenes governed by %s and verify each against the new wording.", name)
		},
	},
	"exceptions": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueLogic,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Exceptions to %s changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("The exceptions changed from %s to %s. Moments that relied on an old loophole may now break the rule.", formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Find scenes that used an exception to %s.", name)
		},
	},
	"when": {
		severity:  entities.SeverityError,
		issueType: entities.IssueContinuity,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s moved in the timeline", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("%s moved from %s to %s. References to events before or after it may now be out of order.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Re-order references to %s against the surrounding timeline.", name)
		},
	},
	"participants": {
		severity:  entities.SeverityWarning,
		issueType: entities.IssueContinuity,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Who was at %s changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Participants of %s changed from %s to %s. Characters may now remember an event they never attended.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Check recollections of %s across the cast.", name)
		},
	},
	"consequences": {
		severity:  entities.SeverityError,
		issueType: entities.IssuePlotHole,
		chapters:  chaptersAll,
		title: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Consequences of %s changed", name)
		},
		describe: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("The consequences of %s changed from %s to %s. Later plot built on the old consequences loses its foundation.", name, formatValue(c.OldValue), formatValue(c.NewValue))
		},
		suggest: func(name string, c entities.ChangeRecord) string {
			return fmt.Sprintf("Trace the plot threads that flow out of %s.", name)
		},
	},
}

// IssueGenerator turns change records into severity-tagged validation issues
// using the fixed rule table. The clock and ID source are injectable so output
// is deterministic under test.
type IssueGenerator struct {
	now   func() time.Time
	newID func() string
}

// NewIssueGenerator creates a generator with the real clock and random IDs.
func NewIssueGenerator() *IssueGenerator {
	return &IssueGenerator{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Generate maps each change to its table-specified issue. Changes to fields
// outside the table produce nothing.
func (g *IssueGenerator) Generate(entry *entities.Entry, changes []entities.ChangeRecord, chapterCount int) []entities.ValidationIssue {
	var issues []entities.ValidationIssue
	for _, change := range changes {
		rule, ok := issueRules[change.Field]
		if !ok {
			continue
		}
		issues = append(issues, entities.ValidationIssue{
			ID:                 g.newID(),
			Severity:           rule.severity,
			Type:               rule.issueType,
			Title:              rule.title(entry.Name, change),
			Description:        rule.describe(entry.Name, change),
			Suggestion:         rule.suggest(entry.Name, change),
			CanonEntryID:       entry.ID,
			CanonEntryName:     entry.Name,
			AffectedChapterIDs: affectedChapters(rule.chapters, chapterCount),
			Field:              change.Field,
			OldValue:           change.OldValue,
			NewValue:           change.NewValue,
			CreatedAt:          g.now(),
		})
	}
	return issues
}

// affectedChapters expands a chapter policy into chapter numbers 1..n.
func affectedChapters(policy chapterPolicy, chapterCount int) []int {
	if chapterCount <= 0 || policy == chaptersNone {
		return nil
	}
	n := chapterCount
	if policy == chaptersFirst && n > firstChapterWindow {
		n = firstChapterWindow
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// formatValue renders a field value for titles and descriptions.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "(empty)"
	case string:
		if val == "" {
			return "(empty)"
		}
		return fmt.Sprintf("%q", val)
	case []string:
		if len(val) == 0 {
			return "(empty)"
		}
		return fmt.Sprintf("%q", strings.Join(val, ", "))
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// isFalse reports whether a change value is boolean false.
func isFalse(v any) bool {
	b, ok := v.(bool)
	return ok && !b
}
