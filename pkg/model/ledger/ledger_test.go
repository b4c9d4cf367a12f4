package ledger_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore/mapdb"

	"github.com/snsbt/governance/pkg/model/ledger"
)

func TestValueSerialization(t *testing.T) {

	values := []*ledger.Value{
		ledger.NewIntegerValue(0),
		ledger.NewIntegerValue(-1),
		ledger.NewIntegerValue(math.MaxInt64),
		ledger.NewStringValue(""),
		ledger.NewStringValue("%b%d%d%d%b%d%b__false__0__0__0__false__0__false"),
	}

	for _, value := range values {
		parsed, err := ledger.ValueFromBytes(value.Bytes())
		require.NoError(t, err)
		require.True(t, value.Equal(parsed))
	}
}

func TestValueFromBytesMalformed(t *testing.T) {

	str := ledger.NewStringValue("abc").Bytes()

	malformed := [][]byte{
		nil,
		{2},
		{byte(ledger.ValueTypeInteger), 1, 2, 3},
		append(ledger.NewIntegerValue(7).Bytes(), 0),
		{byte(ledger.ValueTypeString), 1},
		str[:len(str)-1],
		append(str, 'd'),
	}

	for _, data := range malformed {
		_, err := ledger.ValueFromBytes(data)
		require.ErrorIs(t, err, ledger.ErrMalformedValue)
	}
}

func TestLedgerTypedReads(t *testing.T) {

	l := ledger.New(mapdb.NewMapDB())
	require.NoError(t, l.SetEntries(
		ledger.NewIntegerEntry("int", 42),
		ledger.NewStringEntry("str", "value"),
	))

	i, err := l.Integer("int")
	require.NoError(t, err)
	require.Equal(t, int64(42), i)

	s, err := l.String("str")
	require.NoError(t, err)
	require.Equal(t, "value", s)

	_, err = l.String("int")
	require.ErrorIs(t, err, ledger.ErrTypeMismatch)

	_, err = l.Integer("str")
	require.ErrorIs(t, err, ledger.ErrTypeMismatch)

	_, err = l.Integer("missing")
	require.ErrorIs(t, err, ledger.ErrEntryNotFound)

	has, err := l.Has("missing")
	require.NoError(t, err)
	require.False(t, has)
}

func TestTransactionReadYourWrites(t *testing.T) {

	l := ledger.New(mapdb.NewMapDB())
	require.NoError(t, l.SetEntries(ledger.NewIntegerEntry("a", 1)))

	tx := l.Transaction()
	tx.SetInteger("a", 5)
	tx.SetString("b", "x")
	tx.Delete("a")
	tx.SetInteger("c", 3)

	_, err := tx.Integer("a")
	require.ErrorIs(t, err, ledger.ErrEntryNotFound)

	zero, err := tx.IntegerOrZero("a")
	require.NoError(t, err)
	require.Equal(t, int64(0), zero)

	b, err := tx.String("b")
	require.NoError(t, err)
	require.Equal(t, "x", b)

	// store untouched until commit
	a, err := l.Integer("a")
	require.NoError(t, err)
	require.Equal(t, int64(1), a)

	mutations := tx.Mutations()
	require.Len(t, mutations, 3)
	require.Equal(t, "a", mutations[0].Key)
	require.True(t, mutations[0].IsDelete())
	require.Equal(t, "b", mutations[1].Key)
	require.Equal(t, "c", mutations[2].Key)

	require.NoError(t, tx.Commit())
	require.ErrorIs(t, tx.Commit(), ledger.ErrTransactionClosed)

	has, err := l.Has("a")
	require.NoError(t, err)
	require.False(t, has)

	c, err := l.Integer("c")
	require.NoError(t, err)
	require.Equal(t, int64(3), c)
}

func TestTransactionCancel(t *testing.T) {

	l := ledger.New(mapdb.NewMapDB())
	require.NoError(t, l.SetEntries(ledger.NewIntegerEntry("a", 1)))

	before, err := l.Entries()
	require.NoError(t, err)

	tx := l.Transaction()
	tx.SetInteger("a", 2)
	tx.SetInteger("b", 3)
	tx.Cancel()
	require.ErrorIs(t, tx.Commit(), ledger.ErrTransactionClosed)

	after, err := l.Entries()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestEntriesSkipHealthKeys(t *testing.T) {

	store := mapdb.NewMapDB()
	health, err := ledger.NewHealthTracker(store)
	require.NoError(t, err)
	require.NoError(t, health.CheckCorrectDatabaseVersion())
	require.NoError(t, health.MarkCorrupted())

	corrupted, err := health.IsCorrupted()
	require.NoError(t, err)
	require.True(t, corrupted)

	l := ledger.New(store)
	require.NoError(t, l.SetEntries(
		ledger.NewIntegerEntry("b", 2),
		ledger.NewIntegerEntry("a", 1),
	))

	entries, err := l.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NoError(t, health.MarkHealthy())
	corrupted, err = health.IsCorrupted()
	require.NoError(t, err)
	require.False(t, corrupted)
}
