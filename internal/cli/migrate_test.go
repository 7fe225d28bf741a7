package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCmd_UpOnSQLite(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "activity.db")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_DSN", dsn)

	cmd := MigrateCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"up"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "sqlite schema is up to date")

	// 2回目も成功する
	cmd.SetArgs([]string{"up"})
	require.NoError(t, cmd.Execute())
}

func TestMigrateCmd_StatusRequiresPostgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	cmd := MigrateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"status", "--driver", "sqlite"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only supported for the postgres driver")
}

func TestMigrateCmd_InvalidDriver(t *testing.T) {
	cmd := MigrateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"up", "--driver", "mysql"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --driver")
}
