package storage

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"hrbot/internal/models"
	"hrbot/internal/utils"
)

// EmployeeRepository хранит справочник сотрудников в JSON-файле
// (объект: id -> карточка). Дисциплина загрузки та же, что у выплат:
// отсутствующий или нечитаемый файл подменяется примером, конструктор
// не падает. Номера карт лежат в файле в зашифрованном виде.
type EmployeeRepository struct {
	mu     sync.RWMutex
	path   string
	cipher *utils.CardCipher
	data   map[string]models.Employee
}

// NewEmployeeRepository загружает справочник сотрудников из path.
// cipher может быть nil — тогда номера карт хранятся как есть.
func NewEmployeeRepository(path string, cipher *utils.CardCipher) *EmployeeRepository {
	r := &EmployeeRepository{path: path, cipher: cipher}
	log.Printf("EmployeeRepository: загрузка сотрудников из %s", path)
	r.data = r.load()
	log.Printf("EmployeeRepository: загружено сотрудников: %d", len(r.data))
	return r
}

func (r *EmployeeRepository) load() map[string]models.Employee {
	examplePath := strings.TrimSuffix(r.path, ".json") + ".example.json"

	data := readEmployeeFile(r.path)
	if data == nil {
		log.Printf("EmployeeRepository: файл %s недоступен, используется пример %s", r.path, examplePath)
		data = readEmployeeFile(examplePath)
		if data != nil {
			if err := r.write(data); err != nil {
				log.Printf("EmployeeRepository: не удалось скопировать пример в %s: %v", r.path, err)
			}
		}
	}
	if data == nil {
		data = map[string]models.Employee{}
	}
	// ID в карточке должен совпадать с ключом, даже если в файле он не проставлен.
	for id, emp := range data {
		if emp.ID == "" {
			emp.ID = id
			data[id] = emp
		}
	}
	return data
}

func readEmployeeFile(path string) map[string]models.Employee {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var data map[string]models.Employee
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("EmployeeRepository: ошибка разбора %s: %v", path, err)
		return nil
	}
	return data
}

func (r *EmployeeRepository) write(data map[string]models.Employee) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return err
	}
	return os.WriteFile(r.path, buf.Bytes(), 0644)
}

// GetEmployee возвращает карточку сотрудника с расшифрованным номером карты.
func (r *EmployeeRepository) GetEmployee(id string) (models.Employee, bool) {
	r.mu.RLock()
	emp, ok := r.data[id]
	r.mu.RUnlock()
	if !ok {
		return models.Employee{}, false
	}
	if emp.CardNumber != "" {
		plain, err := r.cipher.Decrypt(emp.CardNumber)
		if err != nil {
			log.Printf("EmployeeRepository.GetEmployee: не удалось расшифровать номер карты сотрудника %s: %v", id, err)
			emp.CardNumber = ""
		} else {
			emp.CardNumber = plain
		}
	}
	return emp, true
}

// ListEmployees возвращает всех сотрудников, отсортированных по ID.
// Номера карт остаются зашифрованными: списку они не нужны.
func (r *EmployeeRepository) ListEmployees() []models.Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Employee, 0, len(r.data))
	for _, emp := range r.data {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SaveEmployee добавляет или обновляет карточку и переписывает файл.
// Номер карты шифруется перед сохранением.
func (r *EmployeeRepository) SaveEmployee(emp models.Employee) error {
	if emp.CardNumber != "" {
		enc, err := r.cipher.Encrypt(emp.CardNumber)
		if err != nil {
			log.Printf("EmployeeRepository.SaveEmployee: ошибка шифрования номера карты сотрудника %s: %v", emp.ID, err)
			return err
		}
		emp.CardNumber = enc
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[emp.ID] = emp
	if err := r.write(r.data); err != nil {
		log.Printf("EmployeeRepository.SaveEmployee: ошибка сохранения файла сотрудников: %v", err)
		return err
	}
	return nil
}
