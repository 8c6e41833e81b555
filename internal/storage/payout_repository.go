package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"hrbot/internal/constants"
	"hrbot/internal/models"
)

// ErrNotFound возвращается, когда заявка с указанным ID отсутствует в хранилище.
// ErrNotFound is returned when no payout with the given ID exists in the store.
var ErrNotFound = errors.New("заявка не найдена")

// PayoutRepository владеет списком заявок на выплату и файлом, в котором они
// хранятся. Репозиторий — единственный, кто пишет в этот файл. Каждая мутация
// синхронно переписывает файл целиком; между процессами блокировок нет
// (последний записавший побеждает), внутри процесса доступ защищен мьютексом.
// PayoutRepository owns the payout list and its backing file. The repository is
// the file's sole writer. Every mutation synchronously rewrites the whole file;
// there is no cross-process locking (last writer wins), in-process access is
// guarded by a mutex.
type PayoutRepository struct {
	mu      sync.Mutex
	path    string
	data    []models.Payout
	counter int
}

// NewPayoutRepository загружает хранилище выплат из path.
// Конструктор никогда не завершается ошибкой: отсутствующий, пустой или
// нечитаемый файл заменяется комплектным примером (path с суффиксом
// .example.json), а при его отсутствии — пустым списком. После загрузки
// статусы приводятся к каноническим, а записи без корректного числового ID
// получают новый; если что-то изменилось, файл сразу переписывается.
// После конструктора каждая запись гарантированно имеет канонический статус
// и уникальный числовой ID в виде строки.
func NewPayoutRepository(path string) *PayoutRepository {
	r := &PayoutRepository{path: path}
	log.Printf("PayoutRepository: загрузка заявок из %s", path)
	r.data = r.load()
	log.Printf("PayoutRepository: загружено заявок: %d", len(r.data))
	if len(r.data) == 0 {
		log.Println("PayoutRepository: хранилище не содержит ни одной заявки")
	}

	// Счетчик сначала выставляется по максимальному числовому ID, и только
	// потом раздаются недостающие: замена не может совпасть с ID, который
	// встретится дальше по списку.
	for i := range r.data {
		if n, err := strconv.Atoi(r.data[i].ID); err == nil && n > r.counter {
			r.counter = n
		}
	}
	changed := false
	for i := range r.data {
		if _, err := strconv.Atoi(r.data[i].ID); err == nil && r.data[i].ID != "" {
			continue
		}
		r.data[i].ID = r.nextID()
		changed = true
	}
	if changed {
		if err := r.persist(); err != nil {
			log.Printf("PayoutRepository: не удалось сохранить заявки после присвоения ID: %v", err)
		}
	}
	return r
}

// load читает основной файл, при необходимости подставляя пример.
// Любая ошибка чтения/разбора деградирует до пустого списка, а не ошибки.
func (r *PayoutRepository) load() []models.Payout {
	examplePath := strings.TrimSuffix(r.path, ".json") + ".example.json"

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("PayoutRepository: файл %s не найден, используется пример %s", r.path, examplePath)
		} else {
			log.Printf("PayoutRepository: ошибка чтения %s: %v", r.path, err)
		}
		return r.normalize(r.loadExample(examplePath))
	}

	var data []models.Payout
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("PayoutRepository: ошибка разбора %s: %v", r.path, err)
		data = nil
	}
	// Пустой файл (или пустой массив) равнозначен отсутствию данных —
	// в этом случае тоже подставляем пример.
	if len(data) == 0 {
		if fallback := r.loadExample(examplePath); len(fallback) > 0 {
			return r.normalize(fallback)
		}
	}
	return r.normalize(data)
}

// loadExample читает комплектный пример и копирует его на место основного файла.
func (r *PayoutRepository) loadExample(examplePath string) []models.Payout {
	raw, err := os.ReadFile(examplePath)
	if err != nil {
		log.Printf("PayoutRepository: пример %s недоступен: %v", examplePath, err)
		return nil
	}
	var data []models.Payout
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("PayoutRepository: ошибка разбора примера %s: %v", examplePath, err)
		return nil
	}
	if err := writeJSON(r.path, data); err != nil {
		log.Printf("PayoutRepository: не удалось скопировать пример в %s: %v", r.path, err)
	}
	return data
}

// normalize приводит устаревшие написания статусов к каноническим
// и сразу сохраняет файл, если что-то поменялось.
func (r *PayoutRepository) normalize(data []models.Payout) []models.Payout {
	changed := false
	for i := range data {
		if canonical, ok := constants.LegacyStatusMap[data[i].Status]; ok {
			data[i].Status = canonical
			changed = true
		}
	}
	if changed {
		if err := writeJSON(r.path, data); err != nil {
			log.Printf("PayoutRepository: не удалось сохранить нормализованные заявки: %v", err)
		}
	}
	return data
}

// persist переписывает файл целиком. Вызывается под мьютексом.
// Ошибка записи отдается вызывающему как есть: повторов и отката нет,
// память и диск могут разойтись до следующей успешной записи.
func (r *PayoutRepository) persist() error {
	return writeJSON(r.path, r.data)
}

func writeJSON(path string, data []models.Payout) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("сериализация заявок: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("запись %s: %w", path, err)
	}
	return nil
}

// nextID выдает следующий свободный числовой ID.
// Счетчик двигается, пока не найдется ID, не занятый существующей записью:
// вручную проставленные "дырявые" ID не должны приводить к дублям.
func (r *PayoutRepository) nextID() string {
	for {
		r.counter++
		id := strconv.Itoa(r.counter)
		if !r.exists(id) {
			return id
		}
	}
}

func (r *PayoutRepository) exists(id string) bool {
	for i := range r.data {
		if r.data[i].ID == id {
			return true
		}
	}
	return false
}

// LoadAll возвращает копию всего списка заявок без фильтрации.
func (r *PayoutRepository) LoadAll() []models.Payout {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Payout, len(r.data))
	copy(out, r.data)
	return out
}

// List возвращает заявки, удовлетворяющие фильтру, отсортированные по
// убыванию timestamp. Заявки с отсутствующим или нечитаемым timestamp
// проходят фильтр по диапазону дат, а не отбрасываются.
func (r *PayoutRepository) List(filter models.PayoutFilter) []models.Payout {
	r.mu.Lock()
	defer r.mu.Unlock()

	fromTS, hasFrom := parseBound(filter.FromDate)
	toTS, hasTo := parseBound(filter.ToDate)

	var result []models.Payout
	for _, p := range r.data {
		if filter.EmployeeID != "" && p.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.PayoutType != "" && p.PayoutType != filter.PayoutType {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Method != "" && p.Method != filter.Method {
			continue
		}
		if hasFrom || hasTo {
			created, ok := parseTimestamp(p.Timestamp)
			if ok {
				if hasFrom && created.Before(fromTS) {
					continue
				}
				if hasTo && created.After(toTS) {
					continue
				}
			}
		}
		result = append(result, p)
	}

	// Формат timestamp с ведущими нулями: строковое сравнение совпадает
	// с хронологическим.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})
	return result
}

// Create добавляет заявку и синхронно сохраняет файл. Если ID не задан или
// уже занят, репозиторий присваивает свежий. Возвращает сохраненную запись.
func (r *PayoutRepository) Create(p models.Payout) (models.Payout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" || r.exists(p.ID) {
		p.ID = r.nextID()
	} else if n, err := strconv.Atoi(p.ID); err == nil && n > r.counter {
		r.counter = n
	}
	r.data = append(r.data, p)
	if err := r.persist(); err != nil {
		log.Printf("PayoutRepository.Create: ошибка сохранения заявки #%s: %v", p.ID, err)
		return p, err
	}
	return p, nil
}

// Update находит заявку по ID и применяет только ненулевые поля частичного
// обновления, после чего сохраняет файл. Возвращает обновленную запись либо
// ErrNotFound.
func (r *PayoutRepository) Update(id string, upd models.PayoutUpdate) (models.Payout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.data {
		if r.data[i].ID != id {
			continue
		}
		applyUpdate(&r.data[i], upd)
		if err := r.persist(); err != nil {
			log.Printf("PayoutRepository.Update: ошибка сохранения заявки #%s: %v", id, err)
			return r.data[i], err
		}
		return r.data[i], nil
	}
	return models.Payout{}, ErrNotFound
}

func applyUpdate(p *models.Payout, upd models.PayoutUpdate) {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Phone != nil {
		p.Phone = *upd.Phone
	}
	if upd.Bank != nil {
		p.Bank = *upd.Bank
	}
	if upd.Amount != nil {
		p.Amount = *upd.Amount
	}
	if upd.Method != nil {
		p.Method = *upd.Method
	}
	if upd.PayoutType != nil {
		p.PayoutType = *upd.PayoutType
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.Timestamp != nil {
		p.Timestamp = *upd.Timestamp
	}
}

// Delete удаляет заявку по ID. Файл переписывается только если запись
// действительно была удалена. Возвращает признак "нашлась ли запись".
func (r *PayoutRepository) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.data)
	kept := r.data[:0]
	for _, p := range r.data {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	r.data = kept
	if len(r.data) == before {
		return false, nil
	}
	if err := r.persist(); err != nil {
		log.Printf("PayoutRepository.Delete: ошибка сохранения после удаления #%s: %v", id, err)
		return true, err
	}
	return true, nil
}

// DeleteMany удаляет все заявки с перечисленными ID. Файл переписывается
// всегда, даже если ни один ID не совпал: контракт операции намеренно прост.
func (r *PayoutRepository) DeleteMany(ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := r.data[:0]
	for _, p := range r.data {
		if _, ok := drop[p.ID]; !ok {
			kept = append(kept, p)
		}
	}
	r.data = kept
	if err := r.persist(); err != nil {
		log.Printf("PayoutRepository.DeleteMany: ошибка сохранения после удаления %d заявок: %v", len(ids), err)
		return err
	}
	return nil
}

// parseBound разбирает границу диапазона дат. Принимает как полный
// timestamp, так и дату без времени.
func parseBound(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{constants.TimestampLayout, constants.BirthdateLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	log.Printf("PayoutRepository: не удалось разобрать границу диапазона '%s', фильтр по дате пропущен", s)
	return time.Time{}, false
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(constants.TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
