package questions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hireon/hireon/internal/decision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bankYAML(t *testing.T, questionsPerTier int) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("leveling:\n")
	sb.WriteString("  - How long have you worked in your field, in months?\n")
	sb.WriteString("  - Briefly describe your most significant work experience.\n")
	sb.WriteString("wage_prompt: What is your monthly wage expectation?\n")
	sb.WriteString("positions:\n")
	sb.WriteString("  Chef:\n")
	sb.WriteString("    wage: {min: 4500, max: 12000, standard: 6000}\n")
	sb.WriteString("    levels:\n")
	for _, tier := range []string{"beginner", "intermediate", "advanced"} {
		fmt.Fprintf(&sb, "      %s:\n", tier)
		for i := 1; i <= questionsPerTier; i++ {
			fmt.Fprintf(&sb, "        - %s question %d\n", tier, i)
		}
	}
	return sb.String()
}

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidBank(t *testing.T) {
	bank, err := Load(writeBank(t, bankYAML(t, 16)))
	require.NoError(t, err)

	assert.Len(t, bank.Leveling, LevelingCount)
	assert.Equal(t, []string{"Chef"}, bank.Names())

	position, err := bank.Position("Chef")
	require.NoError(t, err)
	assert.Equal(t, 6000, position.Wage.Standard)

	list, err := position.Questions(decision.Advanced)
	require.NoError(t, err)
	require.Len(t, list, 16)
	assert.Equal(t, "advanced question 1", list[0])
}

func TestLoadRejectsWrongQuestionCount(t *testing.T) {
	_, err := Load(writeBank(t, bankYAML(t, 15)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 16 questions")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateMissingWagePrompt(t *testing.T) {
	content := strings.Replace(bankYAML(t, 16), "wage_prompt: What is your monthly wage expectation?\n", "", 1)
	_, err := Load(writeBank(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wage_prompt")
}

func TestUnknownPositionAndTier(t *testing.T) {
	bank, err := Load(writeBank(t, bankYAML(t, 16)))
	require.NoError(t, err)

	_, err = bank.Position("Astronaut")
	assert.Error(t, err)

	position, err := bank.Position("Chef")
	require.NoError(t, err)
	_, err = position.Questions(decision.Difficulty("expert"))
	assert.Error(t, err)
}
