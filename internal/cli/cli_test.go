package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// emptyESI resolves no names at all.
func emptyESI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/universe/ids/" {
			fmt.Fprint(w, `{}`)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPrice_RequiresSystemAndItem(t *testing.T) {
	_, err := run(t, "price", "Jita")
	assert.Error(t, err)
}

func TestPrice_UnknownNamesReportNotFound(t *testing.T) {
	srv := emptyESI(t)
	t.Setenv("PRICEBOT_ESI_BASE_URL", srv.URL)

	_, err := run(t, "price", "Nowhere", "Large", "Shield", "Extender", "II")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found: ")
	assert.NotContains(t, err.Error(), "**")
}

func TestPrice_RemoteFailureIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("PRICEBOT_ESI_BASE_URL", srv.URL)

	_, err := run(t, "price", "Jita", "Tritanium")
	require.Error(t, err)
	assert.Equal(t, "ESI error: remote service error", err.Error())
}

func TestRegister_RequiresCredentials(t *testing.T) {
	t.Setenv("DISCORD_APP_ID", "")
	t.Setenv("DISCORD_BOT_TOKEN", "")
	t.Setenv("PRICEBOT_DISCORD_APP_ID", "")
	t.Setenv("PRICEBOT_DISCORD_BOT_TOKEN", "")

	_, err := run(t, "register")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_APP_ID")
}

func TestRegister_PutsCommands(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAuth = r.URL.Path, r.Header.Get("Authorization")
		var body []map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	t.Setenv("PRICEBOT_DISCORD_API_BASE", srv.URL)
	t.Setenv("DISCORD_APP_ID", "123")
	t.Setenv("DISCORD_BOT_TOKEN", "tok")

	out, err := run(t, "register")
	require.NoError(t, err)
	assert.Equal(t, "/applications/123/commands", gotPath)
	assert.Equal(t, "Bot tok", gotAuth)
	assert.True(t, strings.HasPrefix(out, "Registered 1 command(s)"))
}

func TestServe_RequiresPublicKey(t *testing.T) {
	t.Setenv("DISCORD_APP_ID", "123")
	t.Setenv("DISCORD_BOT_PUBLIC_KEY", "")
	t.Setenv("PRICEBOT_DISCORD_PUBLIC_KEY", "")

	_, err := run(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_BOT_PUBLIC_KEY")
}
