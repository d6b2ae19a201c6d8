package service

import "sync"

// keyedMutex сериализует операции по строковому ключу. Используется для
// последовательности read-modify-write при кластеризации (ключ группировки)
// и при upsert хотспота (ключ location+utilityType), чтобы конкурентные
// вызовы не создавали дублей.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock захватывает мьютекс для ключа и возвращает функцию освобождения
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
