package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"hrbot/internal/models"
)

// ExcelRenderer строит xlsx-отчет по заявкам на выплату и возвращает путь
// к файлу. Файлы складываются в dir и именуются с UUID, чтобы параллельные
// экспорты не затирали друг друга.
type ExcelRenderer struct {
	dir string
}

// NewExcelRenderer создает рендерер, складывающий отчеты в dir.
// Каталог создается при необходимости.
func NewExcelRenderer(dir string) (*ExcelRenderer, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("создание каталога отчетов %s: %w", dir, err)
	}
	return &ExcelRenderer{dir: dir}, nil
}

// RenderPayouts записывает набор заявок в xlsx-файл: строка заголовков,
// по строке на заявку, итоговая сумма внизу.
func (er *ExcelRenderer) RenderPayouts(rows []models.Payout) (string, error) {
	f := excelize.NewFile()
	sheetName := "Выплаты"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("создание листа отчета: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Сотрудник", "Телефон", "Банк", "Сумма", "Способ", "Тип", "Статус", "Дата"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	var total float64
	rowIndex := 2
	for _, p := range rows {
		values := []interface{}{p.ID, p.Name, p.Phone, p.Bank, p.Amount, p.Method, p.PayoutType, p.Status, p.Timestamp}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIndex)
			f.SetCellValue(sheetName, cell, v)
		}
		total += p.Amount
		rowIndex++
	}

	f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex+1), "Итого:")
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex+1), total)

	path := filepath.Join(er.dir, fmt.Sprintf("payouts_report_%s.xlsx", uuid.New().String()))
	if err := f.SaveAs(path); err != nil {
		log.Printf("ExcelRenderer: ошибка сохранения отчета %s: %v", path, err)
		return "", fmt.Errorf("сохранение отчета: %w", err)
	}
	log.Printf("ExcelRenderer: отчет по %d заявкам сохранен в %s", len(rows), path)
	return path, nil
}
