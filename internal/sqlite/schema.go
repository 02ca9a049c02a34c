// Package sqlite materializes a survey dataset into a SQLite database so
// that external BI tools can query it with SQL.
package sqlite

// Schema DDL. One row in responses per survey record, keyed by a UUID v7;
// position keeps the dataset order.
const (
	createExports = `CREATE TABLE exports (
    export_id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    row_count INTEGER NOT NULL,
    exported_at TEXT NOT NULL
);`

	createQuestions = `CREATE TABLE questions (
    field TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL,
    label TEXT NOT NULL,
    question TEXT NOT NULL,
    is_numeric INTEGER NOT NULL
);`

	createResponses = `CREATE TABLE responses (
    response_id TEXT PRIMARY KEY,
    export_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    preg1 TEXT NOT NULL,
    preg2 INTEGER NOT NULL CHECK (preg2 BETWEEN 1 AND 5),
    preg3 INTEGER NOT NULL CHECK (preg3 BETWEEN 1 AND 5),
    preg4 TEXT NOT NULL CHECK (preg4 IN ('Si', 'No')),
    preg5 INTEGER NOT NULL CHECK (preg5 BETWEEN 1 AND 5),
    FOREIGN KEY (export_id) REFERENCES exports(export_id)
);`

	createToolCounts = `CREATE VIEW tool_counts AS
    SELECT preg1 AS tool, COUNT(*) AS responses,
           AVG(preg2) AS avg_frequency,
           AVG(preg3) AS avg_quality,
           AVG(preg5) AS avg_difficulty
    FROM responses
    GROUP BY preg1;`
)

// Index DDL.
const (
	idxResponsesPosition = `CREATE UNIQUE INDEX idx_responses_position ON responses(export_id, position);`
	idxResponsesTool     = `CREATE INDEX idx_responses_tool ON responses(preg1);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createExports,
	createQuestions,
	createResponses,
	createToolCounts,
	idxResponsesPosition,
	idxResponsesTool,
}
