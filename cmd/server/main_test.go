package main

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

const runServerEnv = "CAREDESK_TEST_RUN_SERVER"

// TestMain lets the test binary stand in for the server executable.
func TestMain(m *testing.M) {
	if os.Getenv(runServerEnv) == "1" {
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func serverCommand(ctx context.Context, t *testing.T) *exec.Cmd {
	t.Helper()
	exe, err := os.Executable()
	require.NoError(t, err)

	cmd := exec.CommandContext(ctx, exe, "-test.run=^$")
	cmd.Env = append(os.Environ(),
		runServerEnv+"=1",
		"CAREDESK_TRANSPORT_MODE=stdio",
		"CAREDESK_DB_PATH=:memory:",
		"CAREDESK_LOG_LEVEL=debug",
	)
	return cmd
}

func TestStdioProtocol(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: serverCommand(ctx, t)}, nil)
	require.NoError(t, err)
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		info := session.InitializeResult()
		require.NotNil(t, info)
		require.Equal(t, "caredesk", info.ServerInfo.Name)
		require.Equal(t, "0.1.0", info.ServerInfo.Version)
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		names := make(map[string]bool)
		for _, tool := range tools.Tools {
			names[tool.Name] = true
		}
		for _, name := range []string{"list_clients", "list_jobs", "delete_drivers", "quote_driver_pay"} {
			require.True(t, names[name], "missing tool %s", name)
		}
	})

	t.Run("ListEmptyCollection", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "list_clients",
			Arguments: map[string]any{"rowsPerPage": 5},
		})
		require.NoError(t, err)
		require.False(t, result.IsError)
		require.NotEmpty(t, result.Content)

		text, ok := result.Content[0].(*sdkmcp.TextContent)
		require.True(t, ok)
		var page struct {
			TotalCount    int  `json:"totalCount"`
			EmptyRowCount int  `json:"emptyRowCount"`
			NotFound      bool `json:"notFound"`
		}
		require.NoError(t, json.Unmarshal([]byte(text.Text), &page))
		require.Zero(t, page.TotalCount)
		require.True(t, page.NotFound)
	})

	t.Run("QuoteWithoutRates", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "quote_driver_pay",
			Arguments: map[string]any{"hours": 2, "distance": 5},
		})
		require.NoError(t, err)
		require.True(t, result.IsError)
	})
}

// Logs must stay on stderr so stdout carries only JSON-RPC frames.
func TestStdioProtocol_StdoutHygiene(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := serverCommand(ctx, t)
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	initReq := `{"jsonrpc":"2.0","method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}},"id":1}`
	_, err = stdin.Write([]byte(initReq + "\n"))
	require.NoError(t, err)

	line, err := bufio.NewReader(stdout).ReadBytes('\n')
	require.NoError(t, err)

	var frame struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      int             `json:"id"`
		Result  json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(line, &frame), string(line))
	require.Equal(t, "2.0", frame.JSONRPC)
	require.Equal(t, 1, frame.ID)
	require.NotEmpty(t, frame.Result)
	require.NoError(t, stdin.Close())
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, "DEBUG", parseLogLevel("debug").String())
	require.Equal(t, "WARN", parseLogLevel("warn").String())
	require.Equal(t, "INFO", parseLogLevel("verbose").String())
}

func TestEnsureDBDir(t *testing.T) {
	require.NoError(t, ensureDBDir(":memory:"))
	dir := t.TempDir() + "/nested/data"
	require.NoError(t, ensureDBDir(dir+"/desk.db"))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
