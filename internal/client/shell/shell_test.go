package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atinyakov/SmileCare/internal/service"
	"github.com/atinyakov/SmileCare/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func run(t *testing.T, st storage.Storage, input string) (string, *service.SessionStore, *service.CartStore) {
	t.Helper()
	ctx := context.Background()
	sessions, err := service.NewSessionStore(ctx, st)
	require.NoError(t, err)
	cart, err := service.NewCartStore(ctx)
	require.NoError(t, err)

	var out bytes.Buffer
	sh := New(sessions, cart, strings.NewReader(input), &out, zap.NewNop())
	require.NoError(t, sh.Run(ctx))
	return out.String(), sessions, cart
}

func TestShell_SessionFlow(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "panoramic.pdf")
	require.NoError(t, os.WriteFile(file, []byte("%PDF-1.4"), 0o600))

	input := strings.Join([]string{
		"book",
		"register", "Ann Lee", "ann@x.io", "pw",
		"book", "1", "1", "2", "June 1, 2024",
		"appointments",
		"upload " + file, "X-Ray", "Radiology", "",
		"records radio",
		"me",
		"plan",
		"exit",
	}, "\n") + "\n"

	out, sessions, _ := run(t, storage.NewMemoryStorage(), input)

	assert.Contains(t, out, "Please log in first")
	assert.Contains(t, out, "Welcome, Ann Lee!")
	assert.Contains(t, out, "with Dr. Sarah Smith")
	assert.Contains(t, out, "Teeth Cleaning")
	assert.Contains(t, out, "Uploaded #")
	assert.Contains(t, out, "panoramic.pdf")
	assert.Contains(t, out, "1 appointments, 1 records")
	assert.Contains(t, out, "Next appointment: Teeth Cleaning on June 1, 2024 at 9:00 AM with Dr. Sarah Smith")
	assert.Contains(t, out, "Treatment plan TP-2023-001 for Ann Lee")
	assert.Contains(t, out, "Progress: 33% (2 of 6 completed)")
	assert.Contains(t, out, "out of pocket $1140.00")
	assert.Contains(t, out, "Pay in full $1026.00 or 6 x $190.00")
	assert.Contains(t, out, "Next visit 2023-10-20: Filling (Tooth #14), Filling (Tooth #18)")
	assert.True(t, strings.HasSuffix(out, "Bye\n"))

	cur := sessions.Current()
	require.NotNil(t, cur)
	require.Len(t, cur.Records, 1)
	assert.Equal(t, "PDF", cur.Records[0].Format)
	assert.Equal(t, service.DefaultProvider, cur.Records[0].Provider)
}

func TestShell_LoginErrors(t *testing.T) {
	st := storage.NewMemoryStorage()
	run(t, st, "register\nAnn\nann@x.io\npw\nlogout\n")

	out, sessions, _ := run(t, st, "login\nbob@x.io\npw\nlogin\nann@x.io\nbad\nregister\nA\nANN@x.io\nx\n")
	assert.Contains(t, out, "No account with this email")
	assert.Contains(t, out, "Wrong password")
	assert.Contains(t, out, "already exists")
	assert.Nil(t, sessions.Current())

	out, sessions, _ = run(t, st, "login\nann@x.io\npw\n")
	assert.Contains(t, out, "Welcome back, Ann!")
	assert.NotNil(t, sessions.Current())
}

func TestShell_Cart(t *testing.T) {
	input := strings.Join([]string{
		"products floss",
		"add 2 3",
		"add 999",
		"add 1",
		"qty 2 1",
		"remove 1",
		"cart",
		"qty x 1",
		"checkout",
		"checkout",
		"bogus",
	}, "\n") + "\n"

	out, _, cart := run(t, storage.NewMemoryStorage(), input)

	assert.Contains(t, out, "Premium Dental Floss Pack")
	assert.Contains(t, out, "Added 3 x Premium Dental Floss Pack")
	assert.Contains(t, out, "Product not found")
	assert.Contains(t, out, "Invalid input")
	assert.Contains(t, out, "Order placed: 1 items, $12.99")
	assert.Contains(t, out, "Unknown command")
	assert.Zero(t, cart.Count())
}
