package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemindParserSplitsOptionsFromText(t *testing.T) {
	rec := remindParser.Parse("10m stretch your legs -e -ch <#123>")

	assert.True(t, rec.Flag("every"))
	ch, ok := rec.Value("channel")
	require.True(t, ok)
	assert.Equal(t, "<#123>", ch)
	assert.Equal(t, "10m stretch your legs", rec.Remainder())
}

func TestRemindParserListAndRemove(t *testing.T) {
	rec := remindParser.Parse("-l")
	assert.True(t, rec.Flag("list"))

	rec = remindParser.Parse("-rm user-42")
	id, ok := rec.Value("remove")
	require.True(t, ok)
	assert.Equal(t, "user-42", id)
}

func TestPurgeParserShorthandAndBundle(t *testing.T) {
	rec := purgeParser.Parse("-n=25 -s")

	count, ok := rec.Value("count")
	require.True(t, ok)
	assert.Equal(t, "25", count)
	assert.True(t, rec.Flag("silent"))
	assert.False(t, rec.Flag("user"))
}

func TestRollParserDefaultKeyCollectsSpecs(t *testing.T) {
	rec := rollParser.Parse("2d6 d20 -v")

	dice, ok := rec.Value("dice")
	require.True(t, ok)
	assert.Equal(t, "2d6 d20", dice)
	assert.True(t, rec.Flag("verbose"))
	assert.False(t, rec.HasRemainder())
}

func TestPrefixParserClearFlag(t *testing.T) {
	rec := prefixParser.Parse("-c")
	assert.True(t, rec.Flag("clear"))

	rec = prefixParser.Parse("?!")
	assert.Equal(t, "?!", rec.Remainder())
}

func TestParseDiceSpec(t *testing.T) {
	tests := []struct {
		spec    string
		count   int
		sides   int
		wantErr bool
	}{
		{spec: "d20", count: 1, sides: 20},
		{spec: "2d6", count: 2, sides: 6},
		{spec: "D8", count: 1, sides: 8},
		{spec: "0d6", wantErr: true},
		{spec: "2d1", wantErr: true},
		{spec: "101d6", wantErr: true},
		{spec: "2d2000", wantErr: true},
		{spec: "banana", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			count, sides, err := parseDiceSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.count, count)
			assert.Equal(t, tt.sides, sides)
		})
	}
}
