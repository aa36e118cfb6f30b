package repository

import (
	"context"

	"gorm.io/gorm"
	"learnly.id/gamification/internal/entity"
)

type StudentRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Student, error)
	FindByID(ctx context.Context, id string) (*entity.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindByEmail(ctx context.Context, email string) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByID(ctx context.Context, id string) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).Preload("Role").Where("id = ?", id).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}
