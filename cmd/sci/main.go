package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ivn-dev/simple-cloud-inventory/internal/auth"
	"github.com/ivn-dev/simple-cloud-inventory/internal/broadcast"
	"github.com/ivn-dev/simple-cloud-inventory/internal/config"
	"github.com/ivn-dev/simple-cloud-inventory/internal/di_containers"
	"github.com/ivn-dev/simple-cloud-inventory/internal/health_storage"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
	"github.com/ivn-dev/simple-cloud-inventory/internal/netutils"
	"github.com/ivn-dev/simple-cloud-inventory/internal/server"
	"github.com/ivn-dev/simple-cloud-inventory/internal/storage"
	"github.com/ivn-dev/simple-cloud-inventory/internal/storage/postgres"
	"github.com/ivn-dev/simple-cloud-inventory/internal/worker"
	"github.com/joho/godotenv"
)

// "Сборка" и запуск проекта.
func main() {
	// recover для логирования паник в main
	defer func() {
		if r := recover(); r != nil {
			log.Println("Паника в main:", fmt.Sprintf("%v", r))
		}
	}()

	// загружаем переменные окружения из .env для локальной разработки
	errEnv := godotenv.Load("../../.env.development")
	if errEnv != nil {
		log.Println("Не удалось загрузить .env:", errEnv)
	}

	// инициализация конфигурации сервера
	srvConfig := config.InitConfig()

	// инициализация логгера с уровнем логирования из конфигурации
	logger.InitLogger(srvConfig.LogLevel, srvConfig.LogOutput)
	// отложенное закрытие ресурса (актуально если используется файл для логирования)
	defer logger.Log.(*logger.SlogAdapter).Close()

	if srvConfig.JWTSecretKey == "" {
		logger.Log.Error("Не задан секретный ключ JWT (флаг -jwt или переменная JWT_SECRET_KEY)")
		os.Exit(1)
	}

	// инициализация хранилища (PostgreSQL)
	pgStorage, err := postgres.InitStorage(srvConfig.DatabaseURI)
	if err != nil {
		logger.Log.Error("Не удалось инициировать хранилище (БД)", logger.String("err", err.Error()))
		os.Exit(1)
	}

	var handlersStorage storage.Storage = pgStorage

	// создание учетной записи администратора из конфигурации,
	// если её ещё нет в БД
	if err = seedAdmin(context.Background(), handlersStorage, srvConfig); err != nil {
		logger.Log.Error("Не удалось создать учетную запись администратора", logger.String("err", err.Error()))
		os.Exit(1)
	}

	tokenBuilder := auth.NewJWTTokenBuilder()
	var broadcaster broadcast.Broadcaster

	if srvConfig.WebInterface {
		// создание SSE Publisher/Subscriber,
		// используем r3labs/sse через адаптер, реализующий интерфейс Broadcaster.
		// Используется для передачи событий инвентаря во фронтенд.
		// Если планируется использовать только API без фронтенда - отключается флагом -web=false.
		broadcaster = broadcast.NewR3labsSSEAdapter(
			broadcast.MakeJWTTopicResolver(srvConfig.JWTSecretKey, tokenBuilder),
		)
	} else {
		broadcaster = broadcast.NewNoopAdapter()
	}

	// создаем сетевой чекер
	netChecker := netutils.NewNetworkChecker()

	// фоновый обход инвентаря: периодическая проверка сетевой доступности серверов.
	// Отключен по умолчанию, включается флагом -probe-interval или переменной PROBE_INTERVAL.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if srvConfig.ProbeInterval > 0 {
		reachabilityCache := health_storage.NewReachabilityCache()
		go worker.ReachabilityWorker(workerCtx, handlersStorage, netChecker, reachabilityCache, broadcaster, srvConfig.ProbeInterval)
	}

	// создаём handlersContainer — контейнер зависимостей для всех хендлеров,
	// передаём в него хранилище, конфигурацию, SSE адаптер и инструмент проверки серверов по сети
	handlersContainer := di_containers.NewHandlersContainer(handlersStorage, srvConfig, broadcaster, tokenBuilder, netChecker)

	// создаем сервер и запускаем его
	srv, serverErrorCh := server.RunServer(srvConfig.RunAddress, handlersContainer)

	// канал системных сигналов
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop) // гарантированно перестанем слушать сигнал при выходе

	// блокируемся тут в ожидании одного из вариантов завершения работы сервера
	select {
	case err, ok := <-serverErrorCh:
		if !ok {
			logger.Log.Info("Канал ошибок сервера закрыт")
			return
		}
		logger.Log.Error("Ошибка сервера", logger.String("err", err.Error()))
	case sig := <-stop:
		logger.Log.Info("Получен сигнал остановки приложения", logger.String("sig", sig.String()))
	}

	logger.Log.Info("Начало процедуры остановки приложения...")

	// если произошло какое-то событие из select выше, считаем что сервер остановлен
	// и останавливаем остальные части приложения:

	// останавливаем фоновый обход инвентаря
	workerCancel()

	// безопасно закрываем broadcaster
	logger.Log.Info("Закрытие broadcaster...")
	if err = broadcaster.Close(); err != nil {
		logger.Log.Warn("Ошибка закрытия SSE адаптера", logger.String("err", err.Error()))
	}

	logger.Log.Info("Успешное закрытие broadcaster")

	// контекст для завершения работы сервера
	serverShutdownCtx, serverShutdownCancel := context.WithTimeout(context.Background(), 7*time.Second)
	defer serverShutdownCancel()

	// остановка сервера
	if err = srv.Shutdown(serverShutdownCtx); err != nil {
		logger.Log.Error("Ошибка остановки сервера", logger.String("err", err.Error()))
	} else {
		logger.Log.Info("Сервер остановлен")
	}

	// закрытие соединения с БД
	logger.Log.Info("Закрытие соединения с БД...")
	if err = handlersStorage.Close(); err != nil {
		logger.Log.Error("Ошибка закрытия соединения с БД", logger.String("err", err.Error()))
	}
	logger.Log.Info("Успешное закрытие соединения с БД")

	logger.Log.Info("Приложение завершено")
}

// seedAdmin Создает учетную запись администратора из конфигурации, если её еще нет в БД.
// Регистрация в API доступна только администратору, поэтому первая учетная
// запись заводится при старте приложения.
func seedAdmin(ctx context.Context, store storage.Storage, srvConfig *config.Config) error {
	// администратор не задан в конфигурации - пропускаем
	if srvConfig.AdminLogin == "" {
		logger.Log.Info("Учетная запись администратора не задана в конфигурации, пропускаем создание")
		return nil
	}

	if _, err := store.GetUserByLogin(ctx, srvConfig.AdminLogin); err == nil {
		logger.Log.Info("Учетная запись администратора уже существует", logger.String("login", srvConfig.AdminLogin))
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	request := models.RegisterRequest{
		Login:    srvConfig.AdminLogin,
		Email:    srvConfig.AdminEmail,
		Password: srvConfig.AdminPassword,
		Role:     models.RoleAdmin,
	}

	if err := request.Validate(); err != nil {
		return fmt.Errorf("некорректные данные администратора в конфигурации: %w", err)
	}

	admin := models.User{
		Login:    request.Login,
		Email:    request.Email,
		Password: request.Password,
		Role:     request.Role,
	}

	if _, err := store.CreateUser(ctx, &admin); err != nil {
		return err
	}

	logger.Log.Info("Создана учетная запись администратора", logger.String("login", srvConfig.AdminLogin))
	return nil
}
