package storage

import (
	"context"
	"log"

	"quejas/backend/internal/models"
)

// seedEntities are the initial directory rows, carried over from the first
// deployment in Boyacá. Seeding only runs against an empty table.
var seedEntities = []models.Entity{
	{Name: "Alcaldía de Tunja", Type: "Municipal", ContactEmail: "alcaldia@tunja.gov.co", ContactPhone: "3001234567", Address: "Plaza de Bolívar", Active: true},
	{Name: "Gobernación de Boyacá", Type: "Departamental", ContactEmail: "info@boyaca.gov.co", ContactPhone: "3007654321", Address: "Carrera 10 No. 18-35", Active: true},
	{Name: "UPTC", Type: "Educativa", ContactEmail: "rectoria@uptc.edu.co", ContactPhone: "3009876543", Address: "Avenida Central del Norte", Active: true},
	{Name: "Hospital San Rafael", Type: "Salud", ContactEmail: "info@hsr.gov.co", ContactPhone: "3005551234", Address: "Calle 15 No. 10-50", Active: true},
	{Name: "Policía Nacional", Type: "Seguridad", ContactEmail: "policia@gov.co", ContactPhone: "3008887777", Address: "Carrera 9 No. 20-40", Active: true},
}

// SeedEntities inserts the initial entity directory when the table is empty.
// Idempotent: a populated table is left untouched.
func (s *Service) SeedEntities(ctx context.Context) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Entity{}).Count(&count).Error; err != nil {
		log.Printf("ERROR: Failed to count entities before seeding: %v", err)
		return err
	}
	if count > 0 {
		return nil
	}

	if err := s.DB.WithContext(ctx).Create(&seedEntities).Error; err != nil {
		log.Printf("ERROR: Failed to seed entities: %v", err)
		return err
	}
	log.Printf("INFO: Seeded %d entities.", len(seedEntities))
	return nil
}
