package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    id            TEXT PRIMARY KEY,
    user_id       TEXT NOT NULL,
    item          TEXT,
    category      TEXT NOT NULL DEFAULT '',
    kind          TEXT NOT NULL CHECK (kind IN ('Income', 'Expense')),
    amount        INTEGER NOT NULL,
    date          TEXT NOT NULL,
    time_of_day   TEXT,
    location      TEXT,
    latitude      REAL,
    longitude     REAL,
    created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS category_limits (
    user_id       TEXT NOT NULL,
    category      TEXT NOT NULL,
    monthly_limit TEXT NOT NULL,
    PRIMARY KEY (user_id, category)
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(user_id, category);
`
