package service

import (
	"errors"
	"testing"

	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newLeadTimeService(t *testing.T) *LeadTimeService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.LeadTimeTemplate{}, &models.LeadTimeEntry{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate lead time tables failed: %v", err)
	}
	// 共享内存库在用例间复用，先清掉残留数据
	db.Unscoped().Where("1 = 1").Delete(&models.LeadTimeEntry{})
	db.Unscoped().Where("1 = 1").Delete(&models.LeadTimeTemplate{})
	db.Unscoped().Where("1 = 1").Delete(&models.Product{})

	return NewLeadTimeService(repository.NewLeadTimeTemplateRepository(db))
}

func TestLeadTimeService_CreateAndListRoundTrip(t *testing.T) {
	svc := newLeadTimeService(t)

	created, err := svc.Create("Standard", reverseEntries(standardEntries()))
	if err != nil {
		t.Fatalf("create template failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned template id")
	}
	if len(created.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(created.Entries))
	}
	// 条目在落库前按区间权重排序
	if created.Entries[0].QuantityRange != "0-1" || created.Entries[3].QuantityRange != "10+" {
		t.Fatalf("expected canonical entry order, got %v then %v",
			created.Entries[0].QuantityRange, created.Entries[3].QuantityRange)
	}

	fetched, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get template failed: %v", err)
	}
	if !EntriesEqual(fetched.Entries, standardEntries()) {
		t.Fatalf("expected fetched entries to canonically equal the input set")
	}
}

func TestLeadTimeService_SavePreconditionOrder(t *testing.T) {
	svc := newLeadTimeService(t)

	if _, err := svc.Create("  ", standardEntries()); !errors.Is(err, ErrTemplateNameRequired) {
		t.Fatalf("expected name precondition first, got %v", err)
	}

	if _, err := svc.Create("Express", nil); !errors.Is(err, ErrTemplateEntriesRequired) {
		t.Fatalf("expected entries precondition, got %v", err)
	}

	var missingErr *MissingRangesError
	_, err := svc.Create("Express", standardEntries()[:3])
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected missing ranges error, got %v", err)
	}
	if len(missingErr.Ranges) != 1 || missingErr.Ranges[0] != "10+" {
		t.Fatalf("expected 10+ named as missing, got %v", missingErr.Ranges)
	}

	zeroDuration := standardEntries()
	zeroDuration[1].LeadTime = 0
	if _, err := svc.Create("Express", zeroDuration); !errors.Is(err, ErrTemplateDurationInvalid) {
		t.Fatalf("expected duration precondition, got %v", err)
	}

	badUnit := standardEntries()
	badUnit[1].LeadTimeUnit = "weeks"
	if _, err := svc.Create("Express", badUnit); !errors.Is(err, ErrTemplateUnitInvalid) {
		t.Fatalf("expected unit precondition, got %v", err)
	}

	// 补全 10+ 条目后保存成功
	if _, err := svc.Create("Express", standardEntries()); err != nil {
		t.Fatalf("expected save to succeed with all ranges present: %v", err)
	}
}

func TestLeadTimeService_DuplicateGating(t *testing.T) {
	svc := newLeadTimeService(t)

	if _, err := svc.Create("Standard", standardEntries()); err != nil {
		t.Fatalf("seed template failed: %v", err)
	}

	// 名称与数据均重复
	if _, err := svc.Create("standard ", standardEntries()); !errors.Is(err, ErrTemplateNameDataExists) {
		t.Fatalf("expected name-and-data collision, got %v", err)
	}

	// 仅数据重复
	if _, err := svc.Create("Rush", standardEntries()); !errors.Is(err, ErrTemplateDataExists) {
		t.Fatalf("expected data-only collision, got %v", err)
	}

	// 仅名称重复
	different := standardEntries()
	different[0].LeadTime = 10
	if _, err := svc.Create("Standard", different); !errors.Is(err, ErrTemplateNameExists) {
		t.Fatalf("expected name-only collision, got %v", err)
	}

	// 名称与数据都不同 → 成功
	if _, err := svc.Create("Rush", different); err != nil {
		t.Fatalf("expected distinct template to save: %v", err)
	}
}

func TestLeadTimeService_UpdateExcludesSelf(t *testing.T) {
	svc := newLeadTimeService(t)

	created, err := svc.Create("Standard", standardEntries())
	if err != nil {
		t.Fatalf("create template failed: %v", err)
	}

	// 名称和数据不变的更新不应误报自身冲突
	updated, err := svc.Update(created.ID, "Standard", standardEntries())
	if err != nil {
		t.Fatalf("no-op update failed: %v", err)
	}
	if updated.Name != "Standard" {
		t.Fatalf("expected name preserved, got %q", updated.Name)
	}

	entries := standardEntries()
	entries[2].LeadTime = 14
	updated, err = svc.Update(created.ID, "Standard Plus", entries)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Standard Plus" {
		t.Fatalf("expected renamed template, got %q", updated.Name)
	}
	if !EntriesEqual(updated.Entries, entries) {
		t.Fatalf("expected updated entries persisted")
	}
}

func TestLeadTimeService_DeleteGuards(t *testing.T) {
	svc := newLeadTimeService(t)

	created, err := svc.Create("Standard", standardEntries())
	if err != nil {
		t.Fatalf("create template failed: %v", err)
	}

	if err := svc.Delete(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected template gone after delete, got %v", err)
	}
}

func TestLeadTimeService_ReconcileSession(t *testing.T) {
	svc := newLeadTimeService(t)

	created, err := svc.Create("Standard", standardEntries())
	if err != nil {
		t.Fatalf("create template failed: %v", err)
	}

	state, phase, err := svc.ReconcileSession(reverseEntries(standardEntries()), ReconciliationState{})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if state.ActiveTemplateID == nil || *state.ActiveTemplateID != created.ID {
		t.Fatalf("expected session to activate template %d", created.ID)
	}
	if phase != LeadTimePhaseTemplateActive {
		t.Fatalf("expected template_active phase, got %q", phase)
	}

	diverged := standardEntries()
	diverged[0].LeadTime = 21
	state, phase, err = svc.ReconcileSession(diverged, state)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if state.ActiveTemplateID != nil {
		t.Fatalf("expected activation cleared after divergence")
	}
	if phase != LeadTimePhaseDirty {
		t.Fatalf("expected dirty phase, got %q", phase)
	}
}
