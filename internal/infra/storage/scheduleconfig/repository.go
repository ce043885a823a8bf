package scheduleconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/GMS-SessionService/internal/domain"
	"github.com/m04kA/GMS-SessionService/pkg/dbmetrics"
	"github.com/m04kA/GMS-SessionService/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"studio_id",
	"machine_id",
	"slot_duration_minutes",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией расписания студий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStudioAndMachine получает конфигурацию для студии и тренажера
// machineID == nil означает конфигурацию уровня студии (для всех тренажеров)
func (r *Repository) GetByStudioAndMachine(ctx context.Context, studioID int64, machineID *int64) (*domain.StudioScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("studio_schedule_config").
		Where(squirrel.Eq{"studio_id": studioID})

	// Фильтрация по machine_id (NULL или конкретное значение)
	if machineID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"machine_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"machine_id": *machineID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudioAndMachine - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.StudioScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.StudioID,
		&config.MachineID,
		&config.SlotDurationMinutes,
		&config.AdvanceBookingDays,
		&config.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudioAndMachine - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Приоритет применения конфигурации:
// 1. Конфигурация для конкретного тренажера (machineID)
// 2. Конфигурация уровня студии (NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, studioID int64, machineID *int64) (*domain.StudioScheduleConfig, error) {
	// 1. Пробуем получить конфигурацию для конкретного тренажера (если указан)
	if machineID != nil {
		config, err := r.GetByStudioAndMachine(ctx, studioID, machineID)
		if err == nil {
			return config, nil
		}
		if err != ErrConfigNotFound {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (machine): %v", ErrExecQuery, err)
		}
	}

	// 2. Пробуем получить конфигурацию уровня студии
	config, err := r.GetByStudioAndMachine(ctx, studioID, nil)
	if err == nil {
		return config, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (studio): %v", ErrExecQuery, err)
	}

	// Если конфигурация не найдена ни на одном уровне
	return nil, ErrConfigNotFound
}

// GetAllByStudio получает все конфигурации студии (уровня студии и по тренажерам)
func (r *Repository) GetAllByStudio(ctx context.Context, studioID int64) ([]*domain.StudioScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("studio_schedule_config").
		Where(squirrel.Eq{"studio_id": studioID}).
		OrderBy("machine_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByStudio - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByStudio - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.StudioScheduleConfig, 0)
	for rows.Next() {
		var config domain.StudioScheduleConfig
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&config.ID,
			&config.StudioID,
			&config.MachineID,
			&config.SlotDurationMinutes,
			&config.AdvanceBookingDays,
			&config.MinBookingNoticeMinutes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByStudio - scan row: %v", ErrScanRow, err)
		}

		config.CreatedAt = createdAt.Time
		config.UpdatedAt = updatedAt.Time

		configs = append(configs, &config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByStudio - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию для пары (studio_id, machine_id)
// Использует UNIQUE-ограничение таблицы по (studio_id, machine_id)
func (r *Repository) Upsert(ctx context.Context, config *domain.StudioScheduleConfig) (*domain.StudioScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("studio_schedule_config").
		Columns(
			"studio_id",
			"machine_id",
			"slot_duration_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			config.StudioID,
			config.MachineID,
			config.SlotDurationMinutes,
			config.AdvanceBookingDays,
			config.MinBookingNoticeMinutes,
		).
		Suffix(`ON CONFLICT (studio_id, COALESCE(machine_id, 0)) DO UPDATE SET
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("studio_schedule_config").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}
