package di

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-vaccination-registry/cache"
	"github.com/goliatone/go-vaccination-registry/internal/models"
	"github.com/goliatone/go-vaccination-registry/internal/store/bunstore"
	"github.com/goliatone/go-vaccination-registry/pkg/testsupport"
)

func TestConcurrentCatalogReads(t *testing.T) {
	ctx := context.Background()
	container, _ := newTestContainer(t, 10*time.Minute)

	for i := 0; i < 5; i++ {
		if _, err := container.Vaccines().Create(ctx, models.VaccineInput{Name: fmt.Sprintf("Vaccine %d", i)}); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	const numGoroutines = 20
	const readsPerGoroutine = 25

	var wg sync.WaitGroup
	errs := make(chan error, numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < readsPerGoroutine; i++ {
				list, err := container.Vaccines().List(ctx)
				if err != nil {
					errs <- err
					return
				}
				if len(list) != 5 {
					errs <- fmt.Errorf("expected 5 vaccines, got %d", len(list))
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	m := container.Metrics()
	total := testutil.ToFloat64(m.CatalogHits) + testutil.ToFloat64(m.CatalogMisses)
	if total != numGoroutines*readsPerGoroutine {
		t.Errorf("Expected %d recorded reads, got %v", numGoroutines*readsPerGoroutine, total)
	}
	if misses := testutil.ToFloat64(m.CatalogMisses); misses > numGoroutines {
		t.Errorf("Expected in-flight fetches to be shared, got %v misses", misses)
	}
}

func TestConcurrentReadWrite(t *testing.T) {
	ctx := context.Background()
	container, _ := newTestContainer(t, 10*time.Minute)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				if _, err := container.Vaccines().Create(ctx, models.VaccineInput{Name: fmt.Sprintf("W%d-%d", w, i)}); err != nil {
					t.Errorf("Create() failed: %v", err)
					return
				}
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				if _, err := container.Vaccines().List(ctx); err != nil {
					t.Errorf("List() failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// reads that overlapped a write cached their snapshot under an older generation
	list, err := container.Vaccines().List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != 20 {
		t.Errorf("Expected all 20 writes to be visible after the last invalidation, got %d", len(list))
	}
}

func BenchmarkCatalogCachedVsStore(b *testing.B) {
	ctx := context.Background()
	db := testsupport.OpenTestDB(b)

	base := bunstore.New(db)
	for i := 0; i < 20; i++ {
		if _, err := base.CreateVaccine(ctx, models.VaccineInput{Name: fmt.Sprintf("Vaccine %d", i)}); err != nil {
			b.Fatalf("CreateVaccine() failed: %v", err)
		}
	}

	container, err := NewContainer(db, cache.DefaultConfig())
	if err != nil {
		b.Fatalf("NewContainer() failed: %v", err)
	}

	b.Run("store", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := base.ListVaccines(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("cached", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := container.Catalog().ListVaccines(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})
}
