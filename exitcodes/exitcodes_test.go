package exitcodes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, c := range All() {
		got, err := Parse(c.Int())
		require.NoError(t, err, c.String())
		assert.Equal(t, c, got)
	}
}

func TestParseRejectsUndefined(t *testing.T) {
	for _, value := range []int{-1, 2, 79, 85, 99, 102, 119, 120, 128, 130, 255, 256} {
		t.Run(fmt.Sprint(value), func(t *testing.T) {
			_, err := Parse(value)
			require.Error(t, err)

			var unknown *UnknownExitCodeError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, value, unknown.Value)
		})
	}
}

func TestUnknownExitCodeCarriesValue(t *testing.T) {
	_, err := Parse(-1)
	assert.Equal(t, &UnknownExitCodeError{Value: -1}, err)
	assert.EqualError(t, err, "unknown exit code: -1")
}

func TestDefinedCodesAreUniqueAndInOneRange(t *testing.T) {
	seen := make(map[int]bool)
	for _, c := range All() {
		assert.False(t, seen[c.Int()], "duplicate value %d", c.Int())
		seen[c.Int()] = true

		ranges := 0
		if c == OK || c == NotOK {
			ranges++
		}
		if IsUserError(c) {
			ranges++
		}
		if IsSoftwareError(c) {
			ranges++
		}
		assert.Equal(t, 1, ranges, "%s falls into %d ranges", c, ranges)
		assert.False(t, IsSignal(c), "%s looks like a signal", c)
	}
	assert.Len(t, seen, 9)
}

func TestAllIsSorted(t *testing.T) {
	all := All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1], all[i])
	}
	all[0] = Unavailable
	assert.Equal(t, OK, All()[0], "All must return a copy")
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		code     Code
		user     bool
		software bool
		signal   bool
	}{
		{OK, false, false, false},
		{NotOK, false, false, false},
		{UsageError, true, false, false},
		{MovedPermanently, true, false, false},
		{Code(99), true, false, false},
		{InternalError, false, true, false},
		{Unavailable, false, true, false},
		{Code(119), false, true, false},
		{Code(120), false, false, false},
		{Code(128), false, false, false},
		{Code(129), false, false, true},
		{Code(130), false, false, true},
		{Code(254), false, false, true},
		{Code(255), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.user, IsUserError(tt.code), "IsUserError")
			assert.Equal(t, tt.software, IsSoftwareError(tt.code), "IsSoftwareError")
			assert.Equal(t, tt.signal, IsSignal(tt.code), "IsSignal")
		})
	}

	assert.True(t, IsOK(OK))
	assert.False(t, IsError(OK))
	assert.True(t, IsError(Forbidden))
}

func TestStringAndLookup(t *testing.T) {
	assert.Equal(t, "RequirementNotMet", RequirementNotMet.String())
	assert.Equal(t, "Code(130)", Code(130).String())
	assert.Empty(t, Code(130).Description())
	assert.NotEmpty(t, Unavailable.Description())

	c, ok := Lookup("Forbidden")
	require.True(t, ok)
	assert.Equal(t, Forbidden, c)

	_, ok = Lookup("forbidden")
	assert.False(t, ok)

	assert.True(t, InternalError.Valid())
	assert.False(t, Code(2).Valid())
}

func TestClassify(t *testing.T) {
	tests := map[int]Category{
		-1:  CategoryReserved,
		0:   CategorySuccess,
		1:   CategoryFailure,
		2:   CategoryReserved,
		80:  CategoryUser,
		99:  CategoryUser,
		100: CategorySoftware,
		119: CategorySoftware,
		127: CategoryReserved,
		128: CategoryReserved,
		130: CategorySignal,
		255: CategoryReserved,
	}
	for status, want := range tests {
		assert.Equal(t, want, Classify(status), "Classify(%d)", status)
	}

	for _, c := range Categories() {
		parsed, ok := ParseCategory(c.String())
		require.True(t, ok)
		assert.Equal(t, c, parsed)
	}
	_, ok := ParseCategory("fatal")
	assert.False(t, ok)
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"sentinel", ErrInternalError, 100},
		{"plain error", errors.New("boom"), 1},
		{"wrapped", Wrap(errors.New("boom"), UsageError), 80},
		{"wrapped twice", Wrap(Wrap(errors.New("boom"), UsageError), Unavailable), 101},
		{"fmt wrapped", fmt.Errorf("loading: %w", ErrForbidden), 83},
		{"wrapf", Wrapf(RequirementNotMet, "need %s", "vpn"), 82},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "exit 81", ErrUnknownSubcommand.Error())

	cause := errors.New("no such thing")
	err := Wrap(cause, UnknownSubcommand)
	assert.Equal(t, "no such thing", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestExit(t *testing.T) {
	var got []int
	orig := osExit
	osExit = func(code int) { got = append(got, code) }
	t.Cleanup(func() { osExit = orig })

	Exit(Unavailable)
	ExitWithError(Wrap(errors.New("down"), Forbidden))
	ExitWithError(nil)

	assert.Equal(t, []int{101, 83, 0}, got)
}
