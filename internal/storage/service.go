package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	reportPrefix = "report_"
	reportExt    = ".json"
)

// ErrReportNotFound возвращается, если отчета с таким id нет в архиве
var ErrReportNotFound = errors.New("report not found")

// ErrInvalidID возвращается для id, который нельзя использовать как имя файла
var ErrInvalidID = errors.New("invalid session id")

// Archive складывает отчеты в JSON файлы в одной директории.
// Это только выгрузка: сессии из архива не восстанавливаются.
type Archive struct {
	dir string
}

// NewArchive создает архив в директории dir
func NewArchive(dir string) *Archive {
	return &Archive{dir: dir}
}

func (a *Archive) Dir() string {
	return a.dir
}

// SaveReport сохраняет отчет в JSON файл, перезаписывая предыдущий для той же сессии
func (a *Archive) SaveReport(report *Report) error {
	if err := validateID(report.SessionID); err != nil {
		return err
	}

	// Создаем директорию если её нет
	err := os.MkdirAll(a.dir, 0755)
	if err != nil {
		return fmt.Errorf("ошибка создания директории %s: %w", a.dir, err)
	}

	path := a.reportPath(report.SessionID)

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации отчета: %w", err)
	}

	err = os.WriteFile(path, jsonData, 0644)
	if err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}

	return nil
}

// LoadReport загружает отчет из JSON файла
func (a *Archive) LoadReport(sessionID string) (*Report, error) {
	if err := validateID(sessionID); err != nil {
		return nil, err
	}

	path := a.reportPath(sessionID)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", sessionID, ErrReportNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}

	var report Report
	err = json.Unmarshal(data, &report)
	if err != nil {
		return nil, fmt.Errorf("ошибка десериализации JSON: %w", err)
	}

	return &report, nil
}

// ListReports возвращает id сессий, для которых есть отчеты
func (a *Archive) ListReports() ([]string, error) {
	if _, err := os.Stat(a.dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения директории %s: %w", a.dir, err)
	}

	results := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != reportExt || !strings.HasPrefix(name, reportPrefix) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, reportPrefix), reportExt)
		if id != "" {
			results = append(results, id)
		}
	}

	return results, nil
}

func (a *Archive) reportPath(sessionID string) string {
	return filepath.Join(a.dir, reportPrefix+sessionID+reportExt)
}

// validateID не дает id сессии выйти за пределы директории архива
func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return nil
}
