package dispatch

import (
	"fmt"
	"sync"

	"bloodbridge_backend/internal/logger"
)

// Task - именованная фоновая задача
type Task struct {
	Name string
	Run  func() error
}

// Dispatcher выполняет фоновые задачи в режиме fire-and-forget:
// отправитель никогда не блокируется и никогда не видит ошибку задачи.
// Каждая задача выполняется не более одного раза, повторов нет,
// ошибки только логируются.
type Dispatcher struct {
	queue chan Task
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher создает диспетчер с пулом воркеров.
func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 64
	}

	d := &Dispatcher{
		queue: make(chan Task, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

// Submit ставит задачу в очередь, не блокируя вызывающего.
// Если очередь заполнена или диспетчер остановлен, задача
// отбрасывается с записью в лог.
func (d *Dispatcher) Submit(name string, fn func() error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		logger.DispatchLog(name, fmt.Errorf("dispatcher is stopped, task dropped"))
		return
	}

	// Отправка под мьютексом: Stop не закроет канал между проверкой и записью
	select {
	case d.queue <- Task{Name: name, Run: fn}:
	default:
		logger.DispatchLog(name, fmt.Errorf("dispatch queue is full, task dropped"))
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.queue {
		d.runTask(task)
	}
}

// runTask выполняет задачу и гасит панику, чтобы не уронить воркер.
func (d *Dispatcher) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.DispatchLog(task.Name, fmt.Errorf("panic: %v", r))
		}
	}()

	logger.DispatchLog(task.Name, task.Run())
}

// Stop закрывает очередь и дожидается завершения запущенных задач.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}
