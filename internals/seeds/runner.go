package seeds

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"tutly_backend/internals/store"
)

// RunAllSeeds membaca users/courses/classes/enrollments (*.json) dari dir.
// File yang tidak ada dilewati; baris yang sudah ada dilewati.
func RunAllSeeds(ctx context.Context, st store.Store, dir string) error {
	steps := []struct {
		file string
		run  func(context.Context, store.Store, []byte) (int, error)
	}{
		{"users.json", seedUsers},
		{"courses.json", seedCourses},
		{"classes.json", seedClasses},
		{"enrollments.json", seedEnrollments},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		raw, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("ℹ️ [SEED] %s tidak ada, dilewati", path)
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "read %s", path)
		}
		n, err := step.run(ctx, st, raw)
		if err != nil {
			return errors.Wrapf(err, "seed %s", step.file)
		}
		log.Printf("✅ [SEED] %s: %d baris baru", step.file, n)
	}
	return nil
}

func decode[T any](raw []byte) ([]T, error) {
	var out []T
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, "decode json")
	}
	return out, nil
}
