package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/ivn-dev/simple-cloud-inventory/internal/errs"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
	"github.com/ivn-dev/simple-cloud-inventory/internal/storage/postgres/utils"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost Стоимость хэширования паролей пользователей.
const bcryptCost = 12

// Коды ошибок PostgreSQL.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// Имена ограничений уникальности из миграций.
// По имени ограничения различаем, какой именно инвариант нарушен.
const (
	constraintServersIP           = "servers_ip_address_key"
	constraintServersNameProvider = "servers_name_provider_key"
)

// serverColumns Колонки таблицы servers в порядке сканирования.
const serverColumns = "id, name, ip_address, provider, status, cpu_cores, ram_mb, storage_gb, created_at, updated_at"

// PgStorage Структура хранилища в PostgreSQL, удовлетворяющая интерфейсу Storage.
type PgStorage struct {
	DB *sql.DB
}

// InitStorage Инициализация хранилища.
func InitStorage(DatabaseURI string) (*PgStorage, error) {
	// открываем соединение с БД
	pg, err := sql.Open("pgx", DatabaseURI)
	if err != nil {
		logger.Log.Error("Ошибка подключения к БД PostgreSQL", logger.String("err", err.Error()))
		return nil, fmt.Errorf("ошибка подключения к БД PostgreSQL: %w", err)
	}

	// проверяем, "живое" ли соединение
	if err = pg.Ping(); err != nil {
		logger.Log.Error("Ошибка при попытке подключения к БД PostgreSQL", logger.String("err", err.Error()))
		return nil, fmt.Errorf("нет связи с БД PostgreSQL: %w", err)
	}

	// применяем миграции
	err = utils.ApplyMigrations(DatabaseURI)
	if err != nil {
		logger.Log.Error("Ошибка применения миграций к БД PostgreSQL", logger.String("err", err.Error()))
		_ = pg.Close()
		return nil, fmt.Errorf("ошибка применения миграций к БД PostgreSQL: %w", err)
	}

	pgStorage := &PgStorage{DB: pg}

	logger.Log.Info("В качестве хранилища используется БД PostgreSQL")
	return pgStorage, nil
}

// Ping Проверка соединения с БД.
func (pg *PgStorage) Ping(ctx context.Context) error {
	return pg.DB.PingContext(ctx)
}

// Close Закрытие соединения с БД.
func (pg *PgStorage) Close() error {
	return pg.DB.Close()
}

// mapServerWriteError Преобразует ошибку PostgreSQL при записи сервера в доменную ошибку.
// Нарушение уникального индекса различается по имени ограничения (IP или имя+провайдер).
// Нарушение CHECK-ограничения означает, что невалидная запись прошла мимо валидации,
// то есть баг приложения - логируем отдельно и возвращаем как неожиданную ошибку.
func mapServerWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("ошибка записи сервера: %w", err)
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintServersIP:
			return errs.NewErrDuplicatedIP(err)
		case constraintServersNameProvider:
			return errs.NewErrDuplicatedNameProvider(err)
		}
		return fmt.Errorf("нарушение неизвестного уникального ограничения %s: %w", pgErr.ConstraintName, err)
	case pgCheckViolation:
		logger.Log.Error("Нарушение CHECK-ограничения при записи сервера: невалидная запись прошла валидацию",
			logger.String("constraint", pgErr.ConstraintName),
			logger.String("err", err.Error()))
		return fmt.Errorf("нарушение ограничения %s на уровне БД: %w", pgErr.ConstraintName, err)
	}

	return fmt.Errorf("ошибка записи сервера: %w", err)
}

// AddServer Добавление новой записи сервера в БД.
// Инварианты уникальности проверяются БД атомарно со вставкой.
func (pg *PgStorage) AddServer(ctx context.Context, server models.Server) (*models.Server, error) {
	query := `INSERT INTO servers (name, ip_address, provider, status, cpu_cores, ram_mb, storage_gb)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at, updated_at`

	err := pg.DB.QueryRowContext(ctx, query,
		server.Name, server.IPAddress, server.Provider, server.Status,
		server.CPUCores, server.RAMMb, server.StorageGb).
		Scan(&server.ID, &server.CreatedAt, &server.UpdatedAt)

	if err != nil {
		return nil, mapServerWriteError(err)
	}

	return &server, nil
}

// GetServer Получение записи сервера по id.
func (pg *PgStorage) GetServer(ctx context.Context, serverID int64) (*models.Server, error) {
	var server models.Server

	query := `SELECT ` + serverColumns + ` FROM servers WHERE id = $1`

	err := pg.DB.QueryRowContext(ctx, query, serverID).Scan(
		&server.ID, &server.Name, &server.IPAddress, &server.Provider, &server.Status,
		&server.CPUCores, &server.RAMMb, &server.StorageGb, &server.CreatedAt, &server.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, errs.NewErrServerNotFound(serverID, err)
		default:
			return nil, fmt.Errorf("ошибка при получении сервера: %w", err)
		}
	}

	return &server, nil
}

// EditServer Частичное редактирование записи сервера.
// Меняются только переданные (не nil) поля; уникальные ограничения
// перепроверяются БД атомарно с самим UPDATE.
func (pg *PgStorage) EditServer(ctx context.Context, serverID int64, update models.ServerUpdate) (*models.Server, error) {
	set := make([]string, 0, 8)
	args := make([]any, 0, 8)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.IPAddress != nil {
		add("ip_address", *update.IPAddress)
	}
	if update.Provider != nil {
		add("provider", *update.Provider)
	}
	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.CPUCores != nil {
		add("cpu_cores", *update.CPUCores)
	}
	if update.RAMMb != nil {
		add("ram_mb", *update.RAMMb)
	}
	if update.StorageGb != nil {
		add("storage_gb", *update.StorageGb)
	}

	// пустое редактирование отклоняется валидацией до обращения к хранилищу
	if len(set) == 0 {
		return nil, errs.NewErrEmptyUpdate()
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, serverID)

	query := fmt.Sprintf(`UPDATE servers SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), serverColumns)

	var server models.Server
	err := pg.DB.QueryRowContext(ctx, query, args...).Scan(
		&server.ID, &server.Name, &server.IPAddress, &server.Provider, &server.Status,
		&server.CPUCores, &server.RAMMb, &server.StorageGb, &server.CreatedAt, &server.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, errs.NewErrServerNotFound(serverID, err)
		default:
			return nil, mapServerWriteError(err)
		}
	}

	return &server, nil
}

// DelServer Удаление записи сервера.
func (pg *PgStorage) DelServer(ctx context.Context, serverID int64) error {
	query := `DELETE FROM servers WHERE id = $1`

	result, err := pg.DB.ExecContext(ctx, query, serverID)
	if err != nil {
		logger.Log.Error("Ошибка запроса на удаление сервера", logger.String("err", err.Error()))
		return fmt.Errorf("ошибка при удалении сервера: %w", err)
	}

	affectedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при выполнении запроса: %w", err)
	}

	if affectedRows == 0 {
		return errs.NewErrServerNotFound(serverID, fmt.Errorf("%w: затронутых строк %d", sql.ErrNoRows, affectedRows))
	}

	return nil
}

// BulkDelServers Массовое удаление записей одним запросом.
// Несуществующие id молча игнорируются; возвращается число реально удаленных записей.
func (pg *PgStorage) BulkDelServers(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, id)
	}

	query := fmt.Sprintf(`DELETE FROM servers WHERE id IN (%s)`, strings.Join(placeholders, ", "))

	result, err := pg.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка запроса на массовое удаление серверов", logger.String("err", err.Error()))
		return 0, fmt.Errorf("ошибка при массовом удалении серверов: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ошибка при выполнении запроса: %w", err)
	}

	return deleted, nil
}

// buildListFilter Собирает WHERE-часть запроса списка и аргументы к ней.
// Поиск - регистронезависимая подстрока по name ИЛИ ip_address,
// фильтры по провайдеру и статусу - точное совпадение (nil = без ограничения).
func buildListFilter(query models.ServerListQuery) (string, []any) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if query.Search != "" {
		args = append(args, "%"+query.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR ip_address ILIKE $%d)", len(args), len(args)))
	}

	if query.Provider != nil {
		args = append(args, *query.Provider)
		where = append(where, fmt.Sprintf("provider = $%d", len(args)))
	}

	if query.Status != nil {
		args = append(args, *query.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(where) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(where, " AND "), args
}

// ListServers Выборка списка серверов с фильтрацией, сортировкой и offset-пагинацией.
// Возвращает страницу записей и общее число записей, подходящих под фильтр (до пагинации).
func (pg *PgStorage) ListServers(ctx context.Context, query models.ServerListQuery) ([]models.Server, int64, error) {
	whereSQL, args := buildListFilter(query)

	// общее количество записей под фильтром считается до пагинации
	var total int64
	countQuery := `SELECT COUNT(*) FROM servers` + whereSQL
	if err := pg.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Log.Error("Ошибка при подсчете записей серверов", logger.String("err", err.Error()))
		return nil, 0, fmt.Errorf("ошибка при подсчете записей серверов: %w", err)
	}

	order := "DESC"
	if !query.SortDesc {
		order = "ASC"
	}

	// колонка сортировки берется из белого списка модели, направление - из двух констант,
	// в SQL не попадает ничего из недоверенного ввода
	listArgs := append(args, query.Limit, query.Offset())
	listQuery := fmt.Sprintf(`SELECT %s FROM servers%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		serverColumns, whereSQL, query.SortColumn(), order, len(listArgs)-1, len(listArgs))

	rows, err := pg.DB.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		logger.Log.Error("Ошибка при получении списка серверов", logger.String("err", err.Error()))
		return nil, 0, fmt.Errorf("ошибка при получении списка серверов: %w", err)
	}
	defer rows.Close()

	servers := make([]models.Server, 0, query.Limit)

	for rows.Next() {
		var server models.Server
		err = rows.Scan(
			&server.ID, &server.Name, &server.IPAddress, &server.Provider, &server.Status,
			&server.CPUCores, &server.RAMMb, &server.StorageGb, &server.CreatedAt, &server.UpdatedAt)
		if err != nil {
			logger.Log.Error("Ошибка парсинга строки списка серверов", logger.String("err", err.Error()))
			return nil, 0, err
		}

		servers = append(servers, server)
	}

	err = rows.Err()
	if err != nil {
		logger.Log.Error("Ошибка при обработке строк списка серверов", logger.String("err", err.Error()))
		return nil, 0, err
	}

	return servers, total, nil
}

// CreateUser Создание пользователя.
func (pg *PgStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	// хэшируем пароль для передачи в БД
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcryptCost)
	if err != nil {
		logger.Log.Error("Не удалось хэшировать пароль", logger.String("err", err.Error()))
		return nil, err
	}

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	query := `INSERT INTO users (login, email, password, role)
			  VALUES ($1, LOWER($2), $3, $4)
			  RETURNING id, email, is_active, created_at`

	err = pg.DB.QueryRowContext(ctx, query, user.Login, user.Email, string(hashedPassword), user.Role).
		Scan(&user.ID, &user.Email, &user.IsActive, &user.CreatedAt)

	var pgErr *pgconn.PgError
	if err != nil {
		switch {
		// если ошибка говорит о дубликате логина или email - возвращаем доменную ошибку
		case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
			takenErr := errs.NewErrLoginIsTaken(user.Login, err)
			logger.Log.Error("Пользователь существует", logger.String("err", takenErr.Error()))
			return nil, takenErr
		default:
			logger.Log.Error("Ошибка при создании пользователя", logger.String("err", err.Error()))
			return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
		}
	}

	// хэш наружу не отдаем
	user.Password = ""

	return user, nil
}

// GetUser Проверяет пару логин(или email)/пароль и возвращает пользователя.
// Неизвестный логин и неверный пароль дают одну и ту же ошибку,
// чтобы ответ API не раскрывал, существует ли такой пользователь.
// При успехе обновляет время последнего входа.
func (pg *PgStorage) GetUser(ctx context.Context, loginOrEmail, password string) (*models.User, error) {
	var user models.User
	var hashedPassword string

	query := `SELECT id, login, email, password, role, is_active, last_login, created_at
			  FROM users
			  WHERE (login = $1 OR email = LOWER($1)) AND is_active = TRUE`

	err := pg.DB.QueryRowContext(ctx, query, loginOrEmail).Scan(
		&user.ID, &user.Login, &user.Email, &hashedPassword, &user.Role,
		&user.IsActive, &user.LastLogin, &user.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, errs.NewErrWrongLoginOrPassword(err)
		default:
			return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
		}
	}

	// сравниваем пароль с хэшем
	if err = bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return nil, errs.NewErrWrongLoginOrPassword(err)
	}

	// фиксируем время последнего входа
	updateQuery := `UPDATE users SET last_login = NOW() WHERE id = $1`
	if _, err = pg.DB.ExecContext(ctx, updateQuery, user.ID); err != nil {
		// неуспех записи last_login не мешает авторизации
		logger.Log.Warn("Не удалось обновить время последнего входа", logger.String("err", err.Error()))
	}

	return &user, nil
}

// GetUserByLogin Возвращает пользователя по логину.
// Если пользователя нет - возвращает ошибку, оборачивающую sql.ErrNoRows.
func (pg *PgStorage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User

	query := `SELECT id, login, email, role, is_active, last_login, created_at
			  FROM users WHERE login = $1`

	err := pg.DB.QueryRowContext(ctx, query, login).Scan(
		&user.ID, &user.Login, &user.Email, &user.Role,
		&user.IsActive, &user.LastLogin, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("пользователь `%s` не найден: %w", login, err)
	}

	return &user, nil
}
