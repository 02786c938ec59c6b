package testhelpers

// sqliteSchema mirrors migrations/001_init.up.sql for the in-memory test database
const sqliteSchema = `
CREATE TABLE survey_reports (
    id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    title              TEXT      NOT NULL,
    start_keyword      TEXT      NOT NULL DEFAULT '',
    end_keyword        TEXT      NOT NULL DEFAULT '',
    route_keywords     TEXT      NOT NULL DEFAULT '',
    summary_file_path  TEXT,
    detailed_file_path TEXT,
    created_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE survey_constraints (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    survey_id INTEGER NOT NULL REFERENCES survey_reports(id) ON DELETE CASCADE,
    point     TEXT    NOT NULL,
    category  TEXT    NOT NULL DEFAULT 'A' CHECK (category IN ('A', 'B', 'C'))
);

CREATE TABLE survey_pricing (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    survey_id    INTEGER NOT NULL REFERENCES survey_reports(id) ON DELETE CASCADE,
    height       TEXT    NOT NULL DEFAULT '',
    length       TEXT    NOT NULL DEFAULT '',
    width        TEXT    NOT NULL DEFAULT '',
    weight       TEXT    NOT NULL DEFAULT '',
    price_per_km REAL    NOT NULL
);

CREATE TABLE transport_enquiries (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    start_location TEXT      NOT NULL,
    end_location   TEXT      NOT NULL,
    email          TEXT      NOT NULL,
    phone          TEXT      NOT NULL,
    length         TEXT      NOT NULL,
    width          TEXT      NOT NULL,
    height         TEXT      NOT NULL,
    weight         TEXT      NOT NULL,
    created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
