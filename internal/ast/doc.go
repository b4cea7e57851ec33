// Package ast stores the Spy syntax tree in typed arenas.
//
// Узлы не держат указателей друг на друга: всё адресуется через
// ItemID/StmtID/ExprID (1-based, 0 — «нет узла»), а payload каждого вида
// лежит в своей арене. Дерево принадлежит одному Builder на compilation и
// после парсинга не мутируется.
package ast
