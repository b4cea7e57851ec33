// Package vm executes a checked Spy program by walking its AST.
//
// Рантайм минимален: мешок атрибутов на экземпляр, диспетчеризация по
// Override Table из sema, super по MRO, статики как изменяемое состояние
// дескриптора класса. Исполнение однопоточное; непойманная ошибка
// времени выполнения завершает программу диагностикой RUN-таксономии.
package vm
