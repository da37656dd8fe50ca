package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hmans/tasks/internal/config"
	"github.com/hmans/tasks/internal/graph"
	"github.com/hmans/tasks/internal/task"
	"github.com/hmans/tasks/internal/taskstore"
)

// setupCmdTest opens a temporary store and swaps it into the package
// globals the commands use.
func setupCmdTest(t *testing.T) *taskstore.Store {
	t.Helper()

	testCfg := config.Default()
	testCfg.Database.DSN = filepath.Join(t.TempDir(), "tasks.db")

	testStore, err := taskstore.Open(testCfg.Database, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := testStore.Migrate(t.Context()); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}

	oldCfg, oldStore, oldResolver, oldLogger := cfg, store, resolver, logger
	cfg = testCfg
	store = testStore
	resolver = graph.NewResolver(testStore, zap.NewNop())
	logger = zap.NewNop()

	t.Cleanup(func() {
		_ = testStore.Close()
		cfg, store, resolver, logger = oldCfg, oldStore, oldResolver, oldLogger
	})
	return testStore
}

func createCmdTestTask(t *testing.T, s *taskstore.Store, title string) *task.Task {
	t.Helper()
	tk, err := s.Create(t.Context(), title)
	if err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return tk
}

// run invokes c's RunE with its output captured.
func run(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetContext(t.Context())
	t.Cleanup(func() { c.SetOut(nil) })
	err := c.RunE(c, args)
	return buf.String(), err
}

// setFlag sets a bool flag variable for the duration of the test.
func setFlag(t *testing.T, v *bool, value bool) {
	t.Helper()
	old := *v
	*v = value
	t.Cleanup(func() { *v = old })
}

func TestExecuteQuery(t *testing.T) {
	s := setupCmdTest(t)
	createCmdTestTask(t, s, "First")
	createCmdTestTask(t, s, "Second")

	t.Run("query all tasks", func(t *testing.T) {
		result, err := executeQuery(t.Context(), `{ tasks { id title completed } }`, nil, "")
		if err != nil {
			t.Fatalf("executeQuery() error = %v", err)
		}

		var data struct {
			Tasks []struct {
				ID        string `json:"id"`
				Title     string `json:"title"`
				Completed bool   `json:"completed"`
			} `json:"tasks"`
		}
		if err := json.Unmarshal(result, &data); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(data.Tasks) != 2 {
			t.Fatalf("got %d tasks, want 2", len(data.Tasks))
		}
		if data.Tasks[0].Title != "First" || data.Tasks[1].Title != "Second" {
			t.Errorf("titles = %q, %q, want First, Second", data.Tasks[0].Title, data.Tasks[1].Title)
		}
	})

	t.Run("mutation with variables", func(t *testing.T) {
		result, err := executeQuery(t.Context(),
			`mutation Add($title: String!) { addTask(title: $title) { title completed } }`,
			map[string]any{"title": "Third"}, "Add")
		if err != nil {
			t.Fatalf("executeQuery() error = %v", err)
		}
		if !strings.Contains(string(result), `"title":"Third"`) {
			t.Errorf("result = %s, want it to contain the new title", result)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		_, err := executeQuery(t.Context(), `mutation { addTask(title: "  ") { id } }`, nil, "")
		if err == nil {
			t.Fatal("executeQuery() = nil error, want validation error")
		}
		if !strings.Contains(err.Error(), "must not be blank") {
			t.Errorf("error = %q, want it to mention the blank title", err)
		}
	})

	t.Run("invalid query", func(t *testing.T) {
		if _, err := executeQuery(t.Context(), `{ nope }`, nil, ""); err == nil {
			t.Error("executeQuery() = nil error, want error for unknown field")
		}
	})
}

func TestFormatGraphQLErrors(t *testing.T) {
	if err := formatGraphQLErrors(nil); err != nil {
		t.Errorf("formatGraphQLErrors(nil) = %v, want nil", err)
	}
}

func TestPrintSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := printSchema(&buf); err != nil {
		t.Fatalf("printSchema() error = %v", err)
	}
	for _, want := range []string{"type Task", "addTask", "scalar DateTime"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("schema output missing %q", want)
		}
	}
}

func TestAddCommand(t *testing.T) {
	s := setupCmdTest(t)
	setFlag(t, &addJSON, true)

	out, err := run(t, addCmd, "Buy", "milk")
	if err != nil {
		t.Fatalf("add error = %v", err)
	}

	var got taskJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("failed to parse output %q: %v", out, err)
	}
	if got.Title != "Buy milk" || got.Completed {
		t.Errorf("added = %+v, want open task \"Buy milk\"", got)
	}
	if got.CreatedAt != got.UpdatedAt {
		t.Errorf("createdAt %s != updatedAt %s", got.CreatedAt, got.UpdatedAt)
	}

	tasks, err := s.List(t.Context(), nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("stored %d tasks, want 1", len(tasks))
	}
}

func TestAddCommandBlankTitle(t *testing.T) {
	s := setupCmdTest(t)

	if _, err := run(t, addCmd, " "); err == nil {
		t.Fatal("add error = nil, want validation error")
	}

	tasks, _ := s.List(t.Context(), nil)
	if len(tasks) != 0 {
		t.Errorf("stored %d tasks, want 0", len(tasks))
	}
}

func TestListCommand(t *testing.T) {
	s := setupCmdTest(t)
	milk := createCmdTestTask(t, s, "Buy milk")
	createCmdTestTask(t, s, "Walk dog")

	t.Run("quiet", func(t *testing.T) {
		setFlag(t, &listQuiet, true)
		out, err := run(t, listCmd)
		if err != nil {
			t.Fatalf("list error = %v", err)
		}
		if lines := strings.Fields(out); len(lines) != 2 || lines[0] != milk.ID {
			t.Errorf("output = %q, want two IDs starting with %s", out, milk.ID)
		}
	})

	t.Run("search json", func(t *testing.T) {
		setFlag(t, &listJSON, true)
		old := listSearch
		listSearch = "milk"
		t.Cleanup(func() { listSearch = old })

		out, err := run(t, listCmd)
		if err != nil {
			t.Fatalf("list error = %v", err)
		}
		var got []taskJSON
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("failed to parse output %q: %v", out, err)
		}
		if len(got) != 1 || got[0].ID != milk.ID {
			t.Errorf("got %+v, want only %s", got, milk.ID)
		}
	})

	t.Run("table", func(t *testing.T) {
		out, err := run(t, listCmd)
		if err != nil {
			t.Fatalf("list error = %v", err)
		}
		for _, want := range []string{"ID", "STATUS", "Buy milk", "Walk dog"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}

func TestListCommandEmpty(t *testing.T) {
	setupCmdTest(t)

	out, err := run(t, listCmd)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "No tasks found") {
		t.Errorf("output = %q, want empty hint", out)
	}
}

func TestToggleCommand(t *testing.T) {
	s := setupCmdTest(t)
	tk := createCmdTestTask(t, s, "Buy milk")

	out, err := run(t, toggleCmd, tk.ID)
	if err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	if !strings.Contains(out, "Completed") {
		t.Errorf("output = %q, want \"Completed\"", out)
	}

	got, _ := s.Get(t.Context(), tk.ID)
	if !got.Completed {
		t.Error("task not completed after toggle")
	}

	_, err = run(t, toggleCmd, "missing")
	if !errors.Is(err, task.ErrNotFound) {
		t.Errorf("toggle missing error = %v, want ErrNotFound", err)
	}
}

func TestRenameCommand(t *testing.T) {
	s := setupCmdTest(t)
	tk := createCmdTestTask(t, s, "Buy milk")

	if _, err := run(t, renameCmd, tk.ID, "Buy", "oat", "milk"); err != nil {
		t.Fatalf("rename error = %v", err)
	}
	got, _ := s.Get(t.Context(), tk.ID)
	if got.Title != "Buy oat milk" {
		t.Errorf("Title = %q, want \"Buy oat milk\"", got.Title)
	}

	if _, err := run(t, renameCmd, tk.ID, ""); err == nil {
		t.Error("rename to empty title error = nil, want validation error")
	}

	if _, err := run(t, renameCmd, "missing", "x"); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("rename missing error = %v, want ErrNotFound", err)
	}
}

func TestDeleteCommand(t *testing.T) {
	s := setupCmdTest(t)
	tk := createCmdTestTask(t, s, "Buy milk")
	setFlag(t, &forceDelete, true)

	out, err := run(t, deleteCmd, tk.ID)
	if err != nil {
		t.Fatalf("delete error = %v", err)
	}
	if !strings.Contains(out, "Deleted") {
		t.Errorf("output = %q, want \"Deleted\"", out)
	}
	if _, err := s.Get(t.Context(), tk.ID); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	if _, err := run(t, deleteCmd, tk.ID); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestBulkCommands(t *testing.T) {
	s := setupCmdTest(t)
	createCmdTestTask(t, s, "One")
	createCmdTestTask(t, s, "Two")
	setFlag(t, &bulkJSON, true)

	for _, tt := range []struct {
		cmd  *cobra.Command
		want bool
	}{
		{completeAllCmd, true},
		{reopenAllCmd, false},
	} {
		out, err := run(t, tt.cmd)
		if err != nil {
			t.Fatalf("%s error = %v", tt.cmd.Name(), err)
		}
		var got []taskJSON
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("failed to parse output %q: %v", out, err)
		}
		if len(got) != 2 {
			t.Fatalf("%s returned %d tasks, want 2", tt.cmd.Name(), len(got))
		}
		for _, g := range got {
			if g.Completed != tt.want {
				t.Errorf("%s: task %s completed = %v, want %v", tt.cmd.Name(), g.ID, g.Completed, tt.want)
			}
		}
	}
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFile)
	oldPath := configPath
	configPath = path
	t.Cleanup(func() { configPath = oldPath })

	if _, err := run(t, configInitCmd); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	loaded, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Server.Port != config.DefaultPort {
		t.Errorf("Server.Port = %d, want %d", loaded.Server.Port, config.DefaultPort)
	}

	if _, err := run(t, configInitCmd); err == nil {
		t.Error("second config init error = nil, want refusal to overwrite")
	}

	setFlag(t, &configForce, true)
	if _, err := run(t, configInitCmd); err != nil {
		t.Errorf("config init --force error = %v", err)
	}
}

func TestNeedsStore(t *testing.T) {
	if needsStore(configInitCmd) {
		t.Error("needsStore(config init) = true, want false")
	}
	if !needsStore(listCmd) {
		t.Error("needsStore(list) = false, want true")
	}
}

func TestShowCommand(t *testing.T) {
	s := setupCmdTest(t)
	tk := createCmdTestTask(t, s, "Buy milk")

	t.Run("styled", func(t *testing.T) {
		out, err := run(t, showCmd, tk.ID)
		if err != nil {
			t.Fatalf("show error = %v", err)
		}
		created := graph.DateTime{Time: tk.CreatedAt}.String()
		for _, want := range []string{tk.ID, "open", "Buy milk", "created", "updated", created} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		setFlag(t, &showJSON, true)
		out, err := run(t, showCmd, tk.ID)
		if err != nil {
			t.Fatalf("show error = %v", err)
		}
		var got taskJSON
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("failed to parse output %q: %v", out, err)
		}
		if got.ID != tk.ID || got.Title != "Buy milk" || got.Completed {
			t.Errorf("got %+v, want open task %s \"Buy milk\"", got, tk.ID)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := run(t, showCmd, "missing"); !errors.Is(err, task.ErrNotFound) {
			t.Errorf("show missing error = %v, want ErrNotFound", err)
		}
	})
}
