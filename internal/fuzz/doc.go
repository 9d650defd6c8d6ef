// Package fuzztests houses Go fuzz harnesses that exercise the jsmin
// pipeline (source -> jsparse -> bind -> rewrite/jsonout). Its goal is to
// smoke test robustness and guard against panics or hangs on arbitrary
// inputs.
//
// Назначение: прогонять произвольные байты через парсер, биндер и JSON-вывод.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/jsparse, internal/bind,
// internal/rewrite, internal/jsonout, internal/testkit.
package fuzztests
