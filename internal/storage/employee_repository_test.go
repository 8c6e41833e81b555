package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrbot/internal/models"
	"hrbot/internal/utils"
)

const testCipherKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func writeEmployeesFile(t *testing.T, path string, data map[string]models.Employee) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0644))
}

func TestNewEmployeeRepository_FallbackToExample(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "employees.json")
	writeEmployeesFile(t, filepath.Join(dir, "employees.example.json"), map[string]models.Employee{
		"100": {ID: "100", Name: "Иванов"},
	})

	repo := NewEmployeeRepository(mainPath, nil)
	emp, ok := repo.GetEmployee("100")
	require.True(t, ok)
	assert.Equal(t, "Иванов", emp.Name)

	// Пример скопирован на место основного файла.
	_, err := os.Stat(mainPath)
	assert.NoError(t, err)
}

func TestNewEmployeeRepository_BackfillsIDFromKey(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "employees.json")
	writeEmployeesFile(t, mainPath, map[string]models.Employee{
		"100": {Name: "Иванов"},
	})

	repo := NewEmployeeRepository(mainPath, nil)
	emp, ok := repo.GetEmployee("100")
	require.True(t, ok)
	assert.Equal(t, "100", emp.ID)
}

func TestEmployeeRepository_UnknownEmployee(t *testing.T) {
	repo := NewEmployeeRepository(filepath.Join(t.TempDir(), "employees.json"), nil)
	_, ok := repo.GetEmployee("999")
	assert.False(t, ok)
}

func TestListEmployees_SortedByID(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "employees.json")
	writeEmployeesFile(t, mainPath, map[string]models.Employee{
		"300": {ID: "300", Name: "Смирнов"},
		"100": {ID: "100", Name: "Иванов"},
		"200": {ID: "200", Name: "Петрова"},
	})

	repo := NewEmployeeRepository(mainPath, nil)
	got := repo.ListEmployees()
	require.Len(t, got, 3)
	assert.Equal(t, "100", got[0].ID)
	assert.Equal(t, "200", got[1].ID)
	assert.Equal(t, "300", got[2].ID)
}

func TestSaveEmployee_EncryptsCardAtRest(t *testing.T) {
	cipher, err := utils.NewCardCipher(testCipherKeyHex)
	require.NoError(t, err)

	dir := t.TempDir()
	mainPath := filepath.Join(dir, "employees.json")
	repo := NewEmployeeRepository(mainPath, cipher)

	require.NoError(t, repo.SaveEmployee(models.Employee{
		ID:         "100",
		Name:       "Иванов",
		CardNumber: "4111111111111111",
	}))

	// На диске номер карты зашифрован.
	raw, err := os.ReadFile(mainPath)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "4111111111111111"))

	// GetEmployee отдает расшифрованный номер.
	emp, ok := repo.GetEmployee("100")
	require.True(t, ok)
	assert.Equal(t, "4111111111111111", emp.CardNumber)

	// В списке номер остается зашифрованным.
	list := repo.ListEmployees()
	require.Len(t, list, 1)
	assert.NotEqual(t, "4111111111111111", list[0].CardNumber)

	// Перечитанный с диска репозиторий расшифровывает тем же ключом.
	repo2 := NewEmployeeRepository(mainPath, cipher)
	emp2, ok := repo2.GetEmployee("100")
	require.True(t, ok)
	assert.Equal(t, "4111111111111111", emp2.CardNumber)
}
