package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_ParesUpDown(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups := make(map[string]bool)
	downs := make(map[string]bool)
	for _, file := range files {
		name := strings.TrimPrefix(file, "migrations/")
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("arquivo de migração fora do padrão: %s", name)
		}
	}

	assert.Equal(t, ups, downs)
}

func TestMigrations_EmailUnicoSomenteEntreAtivos(t *testing.T) {
	content, err := fs.ReadFile(migrationsFS, "migrations/000004_users_email_unique_active.up.sql")
	require.NoError(t, err)

	sql := string(content)
	assert.Contains(t, sql, "DROP CONSTRAINT IF EXISTS users_email_key")
	assert.Contains(t, sql, "ON users (email) WHERE deleted = FALSE")
}
