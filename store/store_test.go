package store_test

import (
	"bytes"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/ehsanranjbar/tritium"
	"github.com/ehsanranjbar/tritium/iters"
	"github.com/ehsanranjbar/tritium/store"
	"github.com/ehsanranjbar/tritium/testutil"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	txn := testutil.PrepareTxn(t, true)
	s := store.New(txn)

	var id uuid.UUID

	t.Run("NotFound", func(t *testing.T) {
		_, err := s.Get("total")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Put", func(t *testing.T) {
		e, err := s.Put("total", tritium.FromInt64(5))
		require.NoError(t, err)
		require.Equal(t, "total", e.Name)
		require.NotEqual(t, uuid.Nil, e.ID)
		id = e.ID
	})

	t.Run("Get", func(t *testing.T) {
		e, err := s.Get("total")
		require.NoError(t, err)
		require.Equal(t, id, e.ID)
		require.True(t, tritium.FromInt64(5).Equal(e.Value))
	})

	t.Run("Overwrite", func(t *testing.T) {
		e, err := s.Put("total", tritium.MustParse("*0gT"))
		require.NoError(t, err)
		require.Equal(t, id, e.ID)
		require.True(t, e.Value.Validated())

		entries := collect(t, s, store.IteratorOptions{})
		require.Len(t, entries, 1)
		require.Equal(t, "0gT", entries[0].Value.Text())
		require.Equal(t, id, entries[0].ID)
	})

	t.Run("Add", func(t *testing.T) {
		e, err := s.Add("total", tritium.FromInt64(4))
		require.NoError(t, err)
		require.Equal(t, id, e.ID)
		x, err := e.Value.Int64()
		require.NoError(t, err)
		require.Equal(t, int64(3), x)

		e, err = s.Add("fresh", tritium.MustParse("0g1T"))
		require.NoError(t, err)
		require.Equal(t, "0g1T", e.Value.Text())
	})

	t.Run("Rejected", func(t *testing.T) {
		corrupt := tritium.FromRaw(big.NewInt(0b10), true)
		_, err := s.Put("corrupt", corrupt)
		require.ErrorIs(t, err, tritium.ErrInvalidBitmap)
		_, err = s.Get("corrupt")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Add("total", tritium.FromRaw(big.NewInt(0b10), false))
		require.ErrorIs(t, err, tritium.ErrInvalidBitmap)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete("total"))
		_, err := s.Get("total")
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Delete("total"), store.ErrNotFound)

		entries := collect(t, s, store.IteratorOptions{})
		require.Len(t, entries, 1)
		require.Equal(t, "fresh", entries[0].Name)
	})
}

func TestStoreIterator(t *testing.T) {
	txn := testutil.PrepareTxn(t, true)
	s := store.New(txn)

	input := map[string]int64{
		"a": 13, "b": -4, "c": 0, "d": 100, "e": -100, "f": 13, "g": 2, "h": -1,
	}
	for name, x := range input {
		_, err := s.Put(name, tritium.FromInt64(x))
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		opts     store.IteratorOptions
		expected []string
	}{
		{"All", store.IteratorOptions{}, []string{"e", "b", "h", "c", "g", "a", "f", "d"}},
		{"Min", store.IteratorOptions{Min: ptr(tritium.FromInt64(2))}, []string{"g", "a", "f", "d"}},
		{"Max", store.IteratorOptions{Max: ptr(tritium.FromInt64(-1))}, []string{"e", "b", "h"}},
		{"Both", store.IteratorOptions{Min: ptr(tritium.FromInt64(-3)), Max: ptr(tritium.FromInt64(13))}, []string{"h", "c", "g", "a", "f"}},
		{"Empty", store.IteratorOptions{Min: ptr(tritium.FromInt64(14)), Max: ptr(tritium.FromInt64(99))}, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var names []string
			for _, e := range collect(t, s, test.opts) {
				names = append(names, e.Name)
				x, err := e.Value.Int64()
				require.NoError(t, err)
				require.Equal(t, input[e.Name], x)
			}
			require.Equal(t, test.expected, names)
		})
	}

	t.Run("Combinators", func(t *testing.T) {
		it, err := s.NewIterator(store.IteratorOptions{})
		require.NoError(t, err)
		defer it.Close()

		odd := iters.Filter[store.Entry](it, func(e store.Entry) bool {
			x, err := e.Value.Int64()
			return err == nil && x%2 != 0
		})
		entries, err := iters.Collect[store.Entry](iters.Limit[store.Entry](odd, 2))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.Equal(t, "h", entries[0].Name)
		require.Equal(t, "a", entries[1].Name)
	})

	t.Run("InvalidBound", func(t *testing.T) {
		_, err := s.NewIterator(store.IteratorOptions{Min: ptr(tritium.FromRaw(big.NewInt(0b10), false))})
		require.ErrorIs(t, err, tritium.ErrInvalidBitmap)
	})
}

func TestStorePrefix(t *testing.T) {
	txn := testutil.PrepareTxn(t, true)
	s1 := store.New(txn, store.WithPrefix([]byte("one/")))
	s2 := store.New(txn, store.WithPrefix([]byte("two/")))

	_, err := s1.Put("x", tritium.FromInt64(1))
	require.NoError(t, err)
	_, err = s2.Put("x", tritium.FromInt64(-1))
	require.NoError(t, err)

	e1, err := s1.Get("x")
	require.NoError(t, err)
	e2, err := s2.Get("x")
	require.NoError(t, err)
	require.Equal(t, "0g1", e1.Value.Text())
	require.Equal(t, "0gT", e2.Value.Text())
	require.NotEqual(t, e1.ID, e2.ID)

	require.Len(t, collect(t, s1, store.IteratorOptions{}), 1)
}

func TestStoreMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := store.NewMetrics(reg)
	s := store.New(testutil.PrepareTxn(t, true), store.WithMetrics(m))

	_, _ = s.Get("x")
	_, _ = s.Put("x", tritium.FromInt64(8))
	_, _ = s.Put("x", tritium.FromRaw(big.NewInt(0b10), false))
	_, _ = s.Add("x", tritium.FromInt64(1))
	_, _ = s.Get("x")
	_ = s.Delete("x")
	_ = s.Delete("x")

	expected := `
# HELP tritium_store_operations_total Total number of store operations by operation and result
# TYPE tritium_store_operations_total counter
tritium_store_operations_total{op="add",result="ok"} 1
tritium_store_operations_total{op="delete",result="not_found"} 1
tritium_store_operations_total{op="delete",result="ok"} 1
tritium_store_operations_total{op="get",result="not_found"} 1
tritium_store_operations_total{op="get",result="ok"} 1
tritium_store_operations_total{op="put",result="error"} 1
tritium_store_operations_total{op="put",result="ok"} 1
`
	err := promtestutil.GatherAndCompare(reg, strings.NewReader(expected), "tritium_store_operations_total")
	require.NoError(t, err)

	n, err := promtestutil.GatherAndCount(reg, "tritium_store_value_digits")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestStoreLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := store.New(testutil.PrepareTxn(t, true), store.WithLogger(logger))

	_, err := s.Put("x", tritium.FromInt64(2))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "value stored")
	require.Contains(t, buf.String(), "value=0g1T")

	_, err = s.Put("y", tritium.FromRaw(big.NewInt(0b10), false))
	require.Error(t, err)
	require.Contains(t, buf.String(), "rejected value")
	require.Contains(t, buf.String(), "value=*0g?")
}

func collect(t *testing.T, s *store.Store, opts store.IteratorOptions) []store.Entry {
	t.Helper()

	it, err := s.NewIterator(opts)
	require.NoError(t, err)
	defer it.Close()

	entries, err := iters.Collect[store.Entry](it)
	require.NoError(t, err)
	return entries
}

func ptr[T any](v T) *T {
	return &v
}
