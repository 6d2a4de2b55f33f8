package sqlinline

const QSelectIntegrationToken = `--sql 957d47dd-ca6f-438a-b2b4-512b15c996e7
select token
from integration_tokens
where provider = $1::text
limit 1;
`

const QUpsertIntegrationToken = `--sql fc786073-f1ac-4d0d-b51e-e26a25c3b562
insert into integration_tokens(provider, token, properties, created_at, updated_at)
values ($1::text, $2::text, $3::jsonb, now(), now())
on conflict (provider) do update
set token = excluded.token, properties = excluded.properties, updated_at = now();
`
