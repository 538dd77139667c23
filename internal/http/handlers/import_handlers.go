package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

type csvRow struct {
	Name        string
	Description string
	Category    string
	Quantity    int
	MinQuantity int
	Price       float64
}

func parseItemsCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "category", "quantity", "min_quantity", "price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, csvRow{
			Name:        field(record, "name"),
			Description: field(record, "description"),
			Category:    field(record, "category"),
			Quantity:    parseInt(field(record, "quantity")),
			MinQuantity: parseInt(field(record, "min_quantity")),
			Price:       parseFloat(field(record, "price")),
		})
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("missing category")
	}
	if r.Price < 0 {
		return errors.New("invalid price")
	}
	if r.Quantity < 0 {
		return errors.New("invalid quantity")
	}
	if r.MinQuantity < 0 {
		return errors.New("invalid min_quantity")
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func nowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

// ImportItemsHandler godoc
// @Summary Import items via CSV
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportItemsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /api/items/import [post]
// @Security BearerAuth
func ImportItemsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseItemsCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var imported int
	var errorsList []FieldValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, FieldValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		existing, err := itemRepo.GetByName(rec.Name)
		if err == nil && existing.ID != 0 {
			if mode == "skip" {
				errorsList = append(errorsList, FieldValidationError{Description: fmt.Sprintf("row %d: item '%s' already exists", rowNum, rec.Name)})
				continue
			}
			delta := rec.Quantity - existing.Quantity
			existing.Description = rec.Description
			existing.Category = rec.Category
			existing.Quantity = rec.Quantity
			existing.MinQuantity = rec.MinQuantity
			existing.Price = rec.Price
			existing.UpdatedAt = nowRFC3339()
			if _, err := itemRepo.Update(existing); err != nil {
				errorsList = append(errorsList, FieldValidationError{Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.Name)})
				continue
			}
			if delta != 0 {
				if err := movementRepo.Log(existing.ID, delta, models.MovementImport); err != nil {
					log.Printf("could not log import movement for item %d: %v", existing.ID, err)
				}
			}
			imported++
			continue
		}

		newItem := models.Item{
			Name:        rec.Name,
			Description: rec.Description,
			Category:    rec.Category,
			Quantity:    rec.Quantity,
			MinQuantity: rec.MinQuantity,
			Price:       rec.Price,
			CreatedAt:   nowRFC3339(),
			UpdatedAt:   nowRFC3339(),
		}
		created, err := itemRepo.Create(newItem)
		if err != nil {
			errorsList = append(errorsList, FieldValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		if created.Quantity != 0 {
			if err := movementRepo.Log(created.ID, created.Quantity, models.MovementImport); err != nil {
				log.Printf("could not log import movement for item %d: %v", created.ID, err)
			}
		}
		imported++
	}

	err = writeJSON(w, http.StatusOK, ImportItemsResult{
		ImportedItemsCount: imported,
		Errors:             errorsList,
	})

	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
