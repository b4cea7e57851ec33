// Package sema builds the symbol table and the type graph for one parsed
// file and enforces the Spy modifier discipline.
//
// Три прохода: collect (объявления без тел), link (резолв extends и
// implements, циклы, MRO, таблицы переопределений) и check (правила
// abstract/final/static/interface/constructor). Проверка не мутирует AST
// и повторный запуск на том же дереве даёт тот же набор диагностик.
package sema
