package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/config"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
)

var flagNow = time.Date(2024, 6, 19, 9, 0, 0, 0, time.UTC)

func TestEnumValue(t *testing.T) {
	e := newEnum("User", roleNames()...)
	assert.Equal(t, "User", e.String())

	require.NoError(t, e.Set("admin"))
	assert.Equal(t, "Admin", e.String())

	require.NoError(t, e.Set("  EDITOR "))
	assert.Equal(t, "Editor", e.String())

	err := e.Set("root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Admin, Editor, User")
	assert.Equal(t, "Editor", e.String(), "rejected value leaves the old one")
}

func TestListFilter(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	addListFlags(cmd)
	cmd.Flags().Var(newEnum(models.FilterAll, withAll(roleNames()...)...), "role", "")
	cmd.Flags().Var(newEnum(models.FilterAll, withAll(userStatusNames()...)...), "status", "")

	require.NoError(t, cmd.Flags().Set("search", "ada"))
	require.NoError(t, cmd.Flags().Set("role", "admin"))
	require.NoError(t, cmd.Flags().Set("page", "2"))

	f := listFilter(cmd, 25, map[string]string{"role": "role", "status": "status"})
	assert.Equal(t, "ada", f.Search)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 25, f.PageSize)
	assert.Equal(t, map[string]string{"role": "Admin"}, f.Fields)
}

func TestOutputMode(t *testing.T) {
	cmd := &cobra.Command{Use: "show"}
	addFormatFlags(cmd)
	assert.Equal(t, output.ModeTable, outputMode(cmd))

	require.NoError(t, cmd.Flags().Set("yaml", "true"))
	assert.Equal(t, output.ModeYAML, outputMode(cmd))

	require.NoError(t, cmd.Flags().Set("json", "true"))
	assert.Equal(t, output.ModeJSON, outputMode(cmd))
}

func TestPatchFromFlagsOnlyChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "update"}
	addUserFieldFlags(cmd, "", "")
	require.NoError(t, cmd.Flags().Set("name", "Grace"))
	require.NoError(t, cmd.Flags().Set("join-date", "-1d"))

	p, err := patchFromFlags(cmd, userFieldFlags, flagNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"joinDate", "name"}, p.Keys())
	assert.JSONEq(t, `"Grace"`, string(p["name"]))
	assert.JSONEq(t, `"2024-06-18"`, string(p["joinDate"]))
}

func TestPatchFromFlagsAmount(t *testing.T) {
	cmd := &cobra.Command{Use: "update"}
	addOrderFieldFlags(cmd, "")
	require.NoError(t, cmd.Flags().Set("amount", "19.5"))
	require.NoError(t, cmd.Flags().Set("status", "completed"))

	p, err := patchFromFlags(cmd, orderFieldFlags, flagNow)
	require.NoError(t, err)
	assert.JSONEq(t, `19.5`, string(p["amount"]))
	assert.JSONEq(t, `"Completed"`, string(p["status"]))
}

func TestPatchFromFlagsBadDate(t *testing.T) {
	cmd := &cobra.Command{Use: "update"}
	addUserFieldFlags(cmd, "", "")
	require.NoError(t, cmd.Flags().Set("join-date", "someday"))

	_, err := patchFromFlags(cmd, userFieldFlags, flagNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--join-date")
}

func TestUserFromFlagsDefaults(t *testing.T) {
	cmd := &cobra.Command{Use: "create"}
	addUserFieldFlags(cmd, string(models.RoleUser), string(models.UserActive))
	require.NoError(t, cmd.Flags().Set("name", "Ada"))
	require.NoError(t, cmd.Flags().Set("email", "ada@example.com"))

	u, err := userFromFlags(cmd, flagNow)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, models.UserActive, u.Status)
	assert.Equal(t, "2024-06-19", u.JoinDate)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"INFO", slog.LevelInfo, slog.LevelDebug},
		{"", slog.LevelWarn, slog.LevelInfo},
		{"bogus", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
	}
	for _, tt := range tests {
		l := newLogger(&bytes.Buffer{}, tt.level, "")
		assert.True(t, l.Enabled(context.Background(), tt.enabled), "level %q", tt.level)
		assert.False(t, l.Enabled(context.Background(), tt.muted), "level %q", tt.level)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "info", "json").Info("fetched", "endpoint", "/users")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "fetched", rec["msg"])
	assert.Equal(t, "/users", rec["endpoint"])
}

func TestGetBaseDirHonorsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PANEL_HOME", dir)
	assert.Equal(t, dir, getBaseDir())
}

func TestConfigValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Save(dir, &models.Config{PageSize: 25, StoreDriver: "memory"}))
	t.Setenv("PANEL_API_URL", "http://localhost:9999")

	values, err := configValues(dir)
	require.NoError(t, err)
	assert.Equal(t, "25", values["page_size"])
	assert.Equal(t, "memory", values["store_driver"])
	assert.Equal(t, "http://localhost:9999", values["api_base_url"])
	assert.Equal(t, "", values["latency"])
	assert.Len(t, values, len(config.Keys()))
}
