package account

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func birthYears(years int) time.Time {
	return testNow.AddDate(-years, 0, -1)
}

func newTestService(t *testing.T) (*Service, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	return NewService(storage, fixedClock), storage
}

func TestRegister(t *testing.T) {
	svc, storage := newTestService(t)

	res := svc.Register("hocsinh9", "matkhau123", birthYears(14), "nam")
	require.True(t, res.Success, res.Message)

	// Registration auto-logs-in the creator.
	require.True(t, svc.IsLoggedIn())
	cur := svc.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "hocsinh9", cur.Username)
	assert.NotEmpty(t, cur.ID)
	assert.Equal(t, testNow, cur.CreatedAt)
	assert.NotNil(t, cur.Stats)

	// Both documents were written.
	_, ok, _ := storage.Load(KeyAccounts)
	assert.True(t, ok)
	_, ok, _ = storage.Load(KeyCurrentUser)
	assert.True(t, ok)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("short username", func(t *testing.T) {
		res := svc.Register("ab", "x", birthYears(14), "")
		assert.False(t, res.Success)
		assert.Equal(t, msgUsernameLength, res.Message)
	})

	t.Run("underage", func(t *testing.T) {
		res := svc.Register("embe", "x", birthYears(5), "")
		assert.False(t, res.Success)
		assert.Equal(t, msgUnderage, res.Message)
		assert.False(t, svc.IsLoggedIn(), "no account may be created for an underage registrant")
	})

	t.Run("duplicate username is case-insensitive", func(t *testing.T) {
		require.True(t, svc.Register("HocSinh", "x", birthYears(14), "").Success)
		res := svc.Register("hocsinh", "y", birthYears(15), "")
		assert.False(t, res.Success)
		assert.Equal(t, msgUsernameTaken, res.Message)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, svc.Register("hocsinh9", "matkhau123", birthYears(14), "").Success)
	require.True(t, svc.Logout().Success)

	t.Run("wrong password leaves login state untouched", func(t *testing.T) {
		res := svc.Login("hocsinh9", "sai-mat-khau")
		assert.False(t, res.Success)
		assert.Equal(t, msgWrongPassword, res.Message)
		assert.False(t, svc.IsLoggedIn())
	})

	t.Run("unknown user", func(t *testing.T) {
		res := svc.Login("khongtontai", "x")
		assert.False(t, res.Success)
		assert.Equal(t, msgUserNotFound, res.Message)
	})

	t.Run("correct credentials", func(t *testing.T) {
		res := svc.Login("HOCSINH9", "matkhau123")
		assert.True(t, res.Success)
		assert.True(t, svc.IsLoggedIn())
	})
}

func TestDelete(t *testing.T) {
	svc, storage := newTestService(t)
	require.True(t, svc.Register("hocsinh9", "matkhau123", birthYears(14), "").Success)

	t.Run("wrong password", func(t *testing.T) {
		res := svc.Delete("sai")
		assert.False(t, res.Success)
		assert.True(t, svc.IsLoggedIn())
	})

	t.Run("digest re-verified then removed", func(t *testing.T) {
		res := svc.Delete("matkhau123")
		require.True(t, res.Success)
		assert.False(t, svc.IsLoggedIn())

		raw, ok, _ := storage.Load(KeyAccounts)
		require.True(t, ok)
		var list []*UserAccount
		require.NoError(t, json.Unmarshal(raw, &list))
		assert.Empty(t, list)

		_, ok, _ = storage.Load(KeyCurrentUser)
		assert.False(t, ok, "snapshot must be cleared with the account")
	})
}

func TestGameplayWriteThrough(t *testing.T) {
	svc, storage := newTestService(t)
	require.True(t, svc.Register("hocsinh9", "matkhau123", birthYears(14), "").Success)

	svc.RecordAnswer("Toán", true)
	svc.RecordAnswer("Toán", false)
	svc.FinishGame(80)

	cur := svc.Current()
	assert.Equal(t, 2, cur.Stats.QuestionsAnswered)
	assert.Equal(t, 1, cur.Stats.CorrectAnswers)
	assert.Equal(t, 1, cur.Stats.GamesPlayed)
	assert.Equal(t, 80, cur.Stats.BestScore)

	// Every mutation rewrites BOTH documents; the list and the snapshot
	// must agree on the stats.
	raw, ok, _ := storage.Load(KeyAccounts)
	require.True(t, ok)
	var list []*UserAccount
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Stats.QuestionsAnswered)

	raw, ok, _ = storage.Load(KeyCurrentUser)
	require.True(t, ok)
	var snap UserAccount
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, 2, snap.Stats.QuestionsAnswered)
	assert.Equal(t, list[0].ID, snap.ID)
}

func TestReloadFromStorage(t *testing.T) {
	storage := NewMemoryStorage()

	svc := NewService(storage, fixedClock)
	require.True(t, svc.Register("hocsinh9", "matkhau123", birthYears(14), "nu").Success)
	svc.RecordAnswer("Toán", true)

	// A fresh service over the same storage sees the same world, with the
	// current user re-materialized from the list.
	svc2 := NewService(storage, fixedClock)
	require.True(t, svc2.IsLoggedIn())
	cur := svc2.Current()
	assert.Equal(t, "hocsinh9", cur.Username)
	assert.Equal(t, 1, cur.Stats.QuestionsAnswered)

	// The snapshot is a weak reference: mutations through the reloaded
	// service go to the same account object as the list holds.
	svc2.RecordAnswer("Toán", true)
	raw, _, _ := storage.Load(KeyAccounts)
	var list []*UserAccount
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 2, list[0].Stats.QuestionsAnswered)
}

func TestUpdateSettings(t *testing.T) {
	svc, _ := newTestService(t)

	res := svc.UpdateSettings(Settings{Sound: false})
	assert.False(t, res.Success)
	assert.Equal(t, msgNotLoggedIn, res.Message)

	require.True(t, svc.Register("hocsinh9", "x", birthYears(14), "").Success)
	res = svc.UpdateSettings(Settings{Sound: false, PreferredSubject: "math", PreferredGrade: 9})
	require.True(t, res.Success)
	assert.Equal(t, 9, svc.Current().Settings.PreferredGrade)
}

func TestDigestStability(t *testing.T) {
	// The digest must stay byte-compatible with previously stored accounts.
	assert.Equal(t, Digest("matkhau123"), Digest("matkhau123"))
	assert.NotEqual(t, Digest("matkhau123"), Digest("matkhau124"))
	assert.Equal(t, int32(0), Digest(""))
}
